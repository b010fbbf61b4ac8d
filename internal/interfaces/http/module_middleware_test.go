package http_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apphttp "github.com/jhoicas/bananera-ledger/internal/interfaces/http"
)

func TestCanAccess(t *testing.T) {
	cases := []struct {
		role, module, action string
		want                 bool
	}{
		{apphttp.RoleAdministrador, apphttp.ModuleNomina, apphttp.ActionEdit, true},
		{apphttp.RoleGerente, apphttp.ModuleNomina, apphttp.ActionView, true},
		{apphttp.RoleGerente, apphttp.ModuleNomina, apphttp.ActionEdit, false},
		{apphttp.RoleContadorRRHH, apphttp.ModuleInventario, apphttp.ActionView, false},
		{apphttp.RoleBodeguero, apphttp.ModuleInventario, apphttp.ActionEdit, true},
		{apphttp.RoleSupervisorFinca, apphttp.ModuleNomina, apphttp.ActionView, false},
		{"vendedor", apphttp.ModuleInventario, apphttp.ActionView, false},
	}
	for _, tc := range cases {
		t.Run(tc.role+"/"+tc.module+"/"+tc.action, func(t *testing.T) {
			assert.Equal(t, tc.want, apphttp.CanAccess(tc.role, tc.module, tc.action))
		})
	}
}
