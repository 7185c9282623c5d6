package rbac

import (
	"sort"
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Authorize(role, resource, action string) (bool, error)
	Permissions(role string) ([]PermissionResponse, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewService loads rules into the enforcer once. Policies are static for the process
// lifetime.
func NewService(enforcer *casbin.Enforcer, rules []Rule, inherits []Inherit, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	enforcer.ClearPolicy()
	for _, r := range rules {
		if _, err := enforcer.AddPolicy(r.Role, r.Resource, r.Action); err != nil {
			return nil, err
		}
	}
	for _, in := range inherits {
		if _, err := enforcer.AddGroupingPolicy(in.Role, in.Parent); err != nil {
			return nil, err
		}
	}
	l.Info("rbac policy loaded", zap.Int("rules", len(rules)), zap.Int("inherits", len(inherits)))

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Authorize(role, resource, action string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}
	if !allowed {
		s.logger.Debug("rbac denied",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
		)
	}
	return allowed, nil
}

func (s *service) Permissions(role string) ([]PermissionResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perms, err := s.enforcer.GetImplicitPermissionsForUser(role)
	if err != nil {
		return nil, err
	}

	out := make([]PermissionResponse, 0, len(perms))
	for _, p := range perms {
		if len(p) < 3 {
			continue
		}
		out = append(out, PermissionResponse{Resource: p[1], Action: p[2]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Resource != out[j].Resource {
			return out[i].Resource < out[j].Resource
		}
		return out[i].Action < out[j].Action
	})
	return out, nil
}
