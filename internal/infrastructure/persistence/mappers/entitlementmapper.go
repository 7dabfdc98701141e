package mappers

import (
	"time"

	"gorm.io/datatypes"

	"github.com/promptpilot/promptpilot/internal/domain/entitlement"
	"github.com/promptpilot/promptpilot/internal/infrastructure/persistence/models"
	"github.com/promptpilot/promptpilot/internal/shared/biztime"
)

func EntitlementToModel(e *entitlement.Entitlement) *models.EntitlementModel {
	return &models.EntitlementModel{
		ID:                e.ID(),
		UserID:            e.UserID(),
		Plan:              e.Plan().String(),
		Status:            e.Status().String(),
		Tokens:            e.Tokens(),
		LastRefresh:       datatypes.Date(e.LastRefresh()),
		BonusGranted:      e.BonusGranted(),
		PaymentOrderID:    optionalString(e.PaymentOrderID()),
		PaymentID:         optionalString(e.PaymentID()),
		AmountPaid:        e.AmountPaid(),
		SubscriptionStart: e.SubscriptionStart(),
		SubscriptionEnd:   e.SubscriptionEnd(),
		Version:           e.Version(),
		CreatedAt:         e.CreatedAt(),
		UpdatedAt:         e.UpdatedAt(),
	}
}

func EntitlementToDomain(m *models.EntitlementModel) (*entitlement.Entitlement, error) {
	return entitlement.ReconstructEntitlement(entitlement.ReconstructParams{
		ID:                m.ID,
		UserID:            m.UserID,
		Plan:              entitlement.Plan(m.Plan),
		Status:            entitlement.Status(m.Status),
		Tokens:            m.Tokens,
		LastRefresh:       dateFromColumn(m.LastRefresh),
		BonusGranted:      m.BonusGranted,
		PaymentOrderID:    derefString(m.PaymentOrderID),
		PaymentID:         derefString(m.PaymentID),
		AmountPaid:        m.AmountPaid,
		SubscriptionStart: m.SubscriptionStart,
		SubscriptionEnd:   m.SubscriptionEnd,
		Version:           m.Version,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	})
}

// dateFromColumn keeps the stored calendar fields regardless of the zone the
// driver attached when scanning.
func dateFromColumn(d datatypes.Date) time.Time {
	return biztime.CalendarDate(time.Time(d))
}
