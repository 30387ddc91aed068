package service

import (
	"context"
	"fmt"
	"sort"

	"fulfillment/internal/model"
	"fulfillment/internal/repository"

	"go.uber.org/zap"
)

// --- DTOs ---

type RoleResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	IsSystem    bool                 `json:"is_system"`
	Permissions []PermissionResponse `json:"permissions"`
	CreatedAt   string               `json:"created_at"`
}

type PermissionResponse struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Group string `json:"group"`
}

// --- Interface ---

type RoleService interface {
	ListRoles(ctx context.Context) ([]RoleResponse, error)
	GetPermissionsByRoleName(ctx context.Context, roleName string) ([]string, error)
	SeedDefaultRolesAndPermissions(ctx context.Context) error
}

type roleService struct {
	roleRepo  repository.RoleRepository
	txManager repository.TransactionManager
	logger    *zap.Logger
}

func NewRoleService(roleRepo repository.RoleRepository, txManager repository.TransactionManager, logger *zap.Logger) RoleService {
	return &roleService{roleRepo: roleRepo, txManager: txManager, logger: logger}
}

var defaultPermissions = []model.Permission{
	{Code: model.PermReturnsRead, Name: "View return requests", Group: "returns"},
	{Code: model.PermReturnsProcess, Name: "Approve or reject returns", Group: "returns"},
	{Code: model.PermReturnsReceive, Name: "Receive returned parcels", Group: "returns"},
	{Code: model.PermReturnsInspect, Name: "Inspect returned goods", Group: "returns"},
	{Code: model.PermReturnsRefund, Name: "Issue refunds", Group: "returns"},
	{Code: model.PermPoliciesRead, Name: "View return policies", Group: "policies"},
	{Code: model.PermPoliciesWrite, Name: "Manage return policies", Group: "policies"},
	{Code: model.PermDamagedInvRead, Name: "View damaged inventory", Group: "damaged_inventory"},
	{Code: model.PermDamagedInvWrite, Name: "Manage damaged inventory", Group: "damaged_inventory"},
	{Code: model.PermAuditRead, Name: "View audit trail", Group: "audit"},
}

var defaultRoles = map[string]struct {
	Description string
	PermCodes   []string
}{
	model.RoleAdmin: {
		Description: "Administrator with full access to returns operations",
		PermCodes: []string{
			model.PermReturnsRead, model.PermReturnsProcess, model.PermReturnsReceive,
			model.PermReturnsInspect, model.PermReturnsRefund,
			model.PermPoliciesRead, model.PermPoliciesWrite,
			model.PermDamagedInvRead, model.PermDamagedInvWrite,
			model.PermAuditRead,
		},
	},
	model.RoleWarehouse: {
		Description: "Warehouse staff receiving and inspecting returns",
		PermCodes: []string{
			model.PermReturnsRead, model.PermReturnsReceive, model.PermReturnsInspect,
			model.PermPoliciesRead,
			model.PermDamagedInvRead, model.PermDamagedInvWrite,
		},
	},
	model.RoleCustomer: {
		Description: "Shopper managing their own returns",
		PermCodes:   []string{},
	},
}

// --- Implementation ---

func (s *roleService) ListRoles(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.roleRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}

	res := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		perms := make([]PermissionResponse, 0, len(r.Permissions))
		for _, p := range r.Permissions {
			perms = append(perms, PermissionResponse{ID: p.ID.String(), Code: p.Code, Name: p.Name, Group: p.Group})
		}
		res = append(res, RoleResponse{
			ID:          r.ID.String(),
			Name:        r.Name,
			Description: r.Description,
			IsSystem:    r.IsSystem,
			Permissions: perms,
			CreatedAt:   r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return res, nil
}

func (s *roleService) GetPermissionsByRoleName(ctx context.Context, roleName string) ([]string, error) {
	return s.roleRepo.GetPermissionsByRoleName(ctx, roleName)
}

// SeedDefaultRolesAndPermissions upserts the built-in permissions and roles
// and resets each built-in role's grants to the defaults.
func (s *roleService) SeedDefaultRolesAndPermissions(ctx context.Context) error {
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		permByCode := make(map[string]model.Permission, len(defaultPermissions))
		for _, def := range defaultPermissions {
			p := def
			if err := s.roleRepo.FindOrCreatePermission(txCtx, &p); err != nil {
				return fmt.Errorf("failed to seed permission '%s': %w", p.Code, err)
			}
			permByCode[p.Code] = p
		}

		names := make([]string, 0, len(defaultRoles))
		for name := range defaultRoles {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			def := defaultRoles[name]
			role := &model.Role{Name: name, Description: def.Description, IsSystem: true}
			if err := s.roleRepo.FindOrCreateRole(txCtx, role); err != nil {
				return fmt.Errorf("failed to seed role '%s': %w", name, err)
			}

			perms := make([]model.Permission, 0, len(def.PermCodes))
			for _, code := range def.PermCodes {
				perms = append(perms, permByCode[code])
			}
			if err := s.roleRepo.ReplacePermissions(txCtx, role, perms); err != nil {
				return fmt.Errorf("failed to assign permissions to role '%s': %w", name, err)
			}
		}

		s.logger.Info("default roles and permissions seeded",
			zap.Int("roles", len(names)),
			zap.Int("permissions", len(permByCode)))
		return nil
	})
}
