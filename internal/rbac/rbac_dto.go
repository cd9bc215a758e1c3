package rbac

import "starhr/internal/domain"

type EnforceRequest = domain.EnforceRequest

type EnforceResponse = domain.EnforceResponse

type RolePermissionsResponse struct {
	Role        string   `json:"role"`
	Inherits    []string `json:"inherits"`
	Permissions []string `json:"permissions"`
}
