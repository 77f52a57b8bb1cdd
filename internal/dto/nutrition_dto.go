package dto

type CalculateBMIRequest struct {
	WeightKg float64 `json:"weight_kg" validate:"required,gt=0"`
	HeightCm float64 `json:"height_cm" validate:"required,gt=0"`
}

type CalculateBMIResponse struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
	Advice   string  `json:"advice"`
}
