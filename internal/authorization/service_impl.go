package authorization

import (
	"context"
	_ "embed"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	obslogger "github.com/smallbiznis/cosmocats/internal/observability/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

//go:embed model.conf
var modelText string

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

// NewEnforcer builds an in-memory enforcer holding the built-in role policies.
func NewEnforcer() (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	if err := enforcer.BuildRoleLinks(); err != nil {
		return nil, err
	}
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, roles []string, object string, action string) error {
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	for _, role := range roles {
		subject := roleSubject(role)
		if subject == "" {
			continue
		}
		allowed, err := s.enforcer.Enforce(subject, object, action)
		if err != nil {
			return err
		}
		if allowed {
			return nil
		}
	}

	obslogger.WithContext(ctx, s.log).Info("authorization denied",
		zap.Strings("roles", roles),
		zap.String("object", object),
		zap.String("action", action),
	)
	return ErrForbidden
}

func roleSubject(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	role = strings.TrimPrefix(role, "role_")
	if role == "" {
		return ""
	}
	return "role:" + role
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		{"role:user", ObjectCatalog, ActionRead},
		{"role:user", ObjectCatalog, ActionWrite},
		{"role:user", ObjectOrder, ActionRead},
		{"role:user", ObjectOrder, ActionWrite},

		{"role:admin", ObjectFeature, ActionRead},
		{"role:admin", ObjectFeature, ActionWrite},
	}
	if _, err := enforcer.AddPolicies(policies); err != nil {
		return err
	}
	_, err := enforcer.AddGroupingPolicy(roleSubject(RoleAdmin), roleSubject(RoleUser))
	return err
}
