package cluster

import (
	"fmt"
	"strings"

	consul "github.com/hashicorp/consul/api"
	"github.com/hashicorp/go-hclog"
)

// NewConsulClient tenta cada endereço da lista (separada por vírgula) até achar
// um agente que responda com um líder.
func NewConsulClient(addrs string, logger hclog.Logger) (*consul.Client, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	for _, node := range strings.Split(addrs, ",") {
		node = strings.TrimSpace(node)
		if node == "" {
			continue
		}
		cfg := consul.DefaultConfig()
		cfg.Address = node

		client, err := consul.NewClient(cfg)
		if err != nil {
			logger.Warn("consul client failed", "addr", node, "error", err)
			continue
		}

		if _, err := client.Status().Leader(); err != nil {
			logger.Warn("consul agent did not answer leader check", "addr", node, "error", err)
			continue
		}

		logger.Info("connected to consul", "addr", node)
		return client, nil
	}

	return nil, fmt.Errorf("no consul agent available in %q", addrs)
}
