package tenant

import "gorm.io/gorm"

// Scope restricts a query to one company. Every repository query goes through
// it so rows never leak across tenants.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// Active keeps rows that have not been soft-deactivated.
func Active() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	}
}
