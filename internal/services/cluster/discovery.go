package cluster

import (
	"errors"
	"fmt"
	"math/rand/v2"

	consul "github.com/hashicorp/consul/api"
)

// ErrNoHealthyInstance indica que o Consul não conhece nenhuma instância saudável.
var ErrNoHealthyInstance = errors.New("no healthy instance")

// Discover devolve host:porta de uma instância saudável de serviceName, escolhida ao acaso.
func Discover(client *consul.Client, serviceName string) (string, error) {
	entries, _, err := client.Health().Service(serviceName, "", true, nil)
	if err != nil {
		return "", fmt.Errorf("query %s: %w", serviceName, err)
	}
	return pickAddress(entries, serviceName)
}

func pickAddress(entries []*consul.ServiceEntry, serviceName string) (string, error) {
	if len(entries) == 0 {
		return "", fmt.Errorf("%s: %w", serviceName, ErrNoHealthyInstance)
	}
	s := entries[rand.IntN(len(entries))]
	addr := s.Service.Address
	if addr == "" && s.Node != nil {
		addr = s.Node.Address
	}
	return fmt.Sprintf("%s:%d", addr, s.Service.Port), nil
}
