package dto

// CreateBotRequest represents the admin bot creation payload
type CreateBotRequest struct {
	Name               string  `json:"name" validate:"required"`
	Type               string  `json:"type" validate:"required,oneof=SCALPING TREND RANGE EVENT SENTINEL"`
	Description        string  `json:"description" validate:"required"`
	RiskLevel          string  `json:"risk_level" validate:"required,oneof=LOW MEDIUM HIGH"`
	DailyCapPercentage string  `json:"daily_cap_percentage" validate:"required"`
	Status             string  `json:"status" validate:"omitempty,oneof=ACTIVE PAUSED"`
	ImageURL           *string `json:"image_url"`
}

// CreateDailyPerformanceRequest represents the admin daily stats payload
type CreateDailyPerformanceRequest struct {
	BotID            int64  `json:"bot_id" validate:"required,gt=0"`
	Date             string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ProfitPercentage string `json:"profit_percentage" validate:"required"`
}
