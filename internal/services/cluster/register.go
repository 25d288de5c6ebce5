package cluster

import (
	"fmt"
	"os"

	consul "github.com/hashicorp/consul/api"
	"github.com/hashicorp/go-hclog"
)

// Registration descreve como o servidor se anuncia no Consul.
type Registration struct {
	ServiceName string
	// Hostname resolvível pelo agente. Vazio usa o hostname da máquina.
	Hostname string
	Port     int
}

func (r Registration) hostname() string {
	if r.Hostname != "" {
		return r.Hostname
	}
	if h := os.Getenv("HOSTNAME"); h != "" {
		return h
	}
	h, _ := os.Hostname()
	return h
}

// ServiceID é único por instância.
func (r Registration) ServiceID() string {
	return fmt.Sprintf("%s-%s", r.ServiceName, r.hostname())
}

func (r Registration) agentRegistration() *consul.AgentServiceRegistration {
	host := r.hostname()
	return &consul.AgentServiceRegistration{
		ID:      r.ServiceID(),
		Name:    r.ServiceName,
		Address: host,
		Port:    r.Port,
		Check: &consul.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/health", host, r.Port),
			Timeout:                        "5s",
			Interval:                       "10s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}
}

// Register registra o serviço no agente e devolve a função que o remove.
func Register(client *consul.Client, reg Registration, logger hclog.Logger) (func() error, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	agentReg := reg.agentRegistration()
	if err := client.Agent().ServiceRegister(agentReg); err != nil {
		return nil, fmt.Errorf("register %s in consul: %w", agentReg.ID, err)
	}
	logger.Info("service registered", "service", reg.ServiceName, "id", agentReg.ID)

	return func() error {
		if err := client.Agent().ServiceDeregister(agentReg.ID); err != nil {
			return fmt.Errorf("deregister %s: %w", agentReg.ID, err)
		}
		logger.Info("service deregistered", "id", agentReg.ID)
		return nil
	}, nil
}
