package ports

import "context"

// Activity kinds the regulation engine submits. Physical execution (payment
// transfer, resource movement) happens in the external activity engine; this
// core only requests it.
const (
	ActivityAdjustBusinessWages      = "adjust_business_wages"
	ActivityAdjustBuildingLeasePrice = "adjust_building_lease_price"
	ActivityManagePublicSellContract = "manage_public_sell_contract"
	ActivityManageImportContract     = "manage_import_contract"
	ActivityManageMarkupBuyContract  = "manage_markup_buy_contract"
)

type ActivityAck struct {
	Accepted    bool   `json:"accepted"`
	ActivityRef string `json:"activity_ref,omitempty"`
}

type ActivityAPI interface {
	Submit(ctx context.Context, citizen, activityKind string, params map[string]any) (ActivityAck, error)
}
