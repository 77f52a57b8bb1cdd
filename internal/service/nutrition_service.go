package service

import (
	"context"

	"nutrilokal-be/internal/dto"
	"nutrilokal-be/internal/pkg/apperror"
	"nutrilokal-be/pkg/nutrition"
)

type INutritionService interface {
	CalculateBMI(ctx context.Context, request *dto.CalculateBMIRequest) (*dto.CalculateBMIResponse, error)
}

type nutritionService struct{}

func NewNutritionService() INutritionService {
	return &nutritionService{}
}

func (s *nutritionService) CalculateBMI(ctx context.Context, request *dto.CalculateBMIRequest) (*dto.CalculateBMIResponse, error) {
	res, err := nutrition.CalculateBMI(request.WeightKg, request.HeightCm)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	return &dto.CalculateBMIResponse{
		BMI:      res.BMI,
		Category: string(res.Category),
		Advice:   res.Advice,
	}, nil
}
