package auth

import "github.com/jhoicas/Ventas-api/internal/domain/entity"

// Capacidades del sistema.
const (
	CapManageStock         = "manage_stock"
	CapAdjustStock         = "adjust_stock"
	CapViewStock           = "view_stock"
	CapSell                = "sell"
	CapCancelSale          = "cancel_sale"
	CapViewSales           = "view_sales"
	CapAnnulSale           = "annul_sale"
	CapApproveAnnulment    = "approve_annulment"
	CapGenerateInvoice     = "generate_invoice"
	CapViewFiscalDocuments = "view_fiscal_documents"
	CapOpenCashBox         = "open_cash_box"
	CapCloseCashBox        = "close_cash_box"
	CapRegisterExpense     = "register_expense"
	CapManageCashMovements = "manage_cash_movements"
	CapViewCashBox         = "view_cash_box"
	CapManageProducts      = "manage_products"
	CapViewProducts        = "view_products"
	CapViewReports         = "view_reports"
	CapExportData          = "export_data"
)

// AllCapabilities todas las capacidades (rol admin).
var AllCapabilities = []string{
	CapManageStock, CapAdjustStock, CapViewStock,
	CapSell, CapCancelSale, CapViewSales,
	CapAnnulSale, CapApproveAnnulment,
	CapGenerateInvoice, CapViewFiscalDocuments,
	CapOpenCashBox, CapCloseCashBox, CapRegisterExpense, CapManageCashMovements, CapViewCashBox,
	CapManageProducts, CapViewProducts,
	CapViewReports, CapExportData,
}

var roleCapabilities = map[string][]string{
	entity.RoleAdmin: AllCapabilities,
	entity.RoleManager: {
		CapViewStock, CapAdjustStock,
		CapSell, CapViewSales, CapCancelSale,
		CapAnnulSale, CapApproveAnnulment,
		CapGenerateInvoice, CapViewFiscalDocuments,
		CapOpenCashBox, CapCloseCashBox, CapRegisterExpense, CapManageCashMovements, CapViewCashBox,
		CapViewProducts, CapViewReports, CapExportData,
	},
	entity.RoleCashier: {
		CapViewStock, CapSell, CapViewSales, CapGenerateInvoice, CapViewProducts,
		CapViewCashBox, CapOpenCashBox, CapCloseCashBox,
	},
	entity.RoleWarehouse: {
		CapManageStock, CapAdjustStock, CapViewStock, CapManageProducts, CapViewProducts,
	},
}

// PermissionChecker decide si un actor (por su rol) tiene una capacidad.
// Se consulta en la capa HTTP antes de invocar los ledgers.
type PermissionChecker interface {
	HasCapability(role, capability string) bool
}

// RolePermissions PermissionChecker basado en la tabla fija de roles.
type RolePermissions struct {
	grants map[string]map[string]bool
}

// NewRolePermissions construye el checker desde la tabla de roles.
func NewRolePermissions() *RolePermissions {
	grants := make(map[string]map[string]bool, len(roleCapabilities))
	for role, caps := range roleCapabilities {
		set := make(map[string]bool, len(caps))
		for _, c := range caps {
			set[c] = true
		}
		grants[role] = set
	}
	return &RolePermissions{grants: grants}
}

// HasCapability true si el rol incluye la capacidad.
func (p *RolePermissions) HasCapability(role, capability string) bool {
	return p.grants[role][capability]
}

// Capabilities lista de capacidades del rol (vacía si el rol no existe).
func (p *RolePermissions) Capabilities(role string) []string {
	return append([]string(nil), roleCapabilities[role]...)
}

// IsValidRole indica si el rol existe.
func IsValidRole(role string) bool {
	_, ok := roleCapabilities[role]
	return ok
}
