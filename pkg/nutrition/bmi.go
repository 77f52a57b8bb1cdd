package nutrition

import (
	"errors"
	"math"
)

var ErrInvalidMeasurement = errors.New("berat dan tinggi badan harus lebih dari nol")

type Category string

const (
	Underweight Category = "Berat Badan Kurang"
	Normal      Category = "Berat Badan Normal"
	Overweight  Category = "Kelebihan Berat Badan"
	Obese       Category = "Obesitas"
)

var advice = map[Category]string{
	Underweight: "Fokus pada makanan lokal padat gizi seperti tempe, tahu, ikan, dan tambahkan santan atau minyak kelapa pada masakan.",
	Normal:      "Pertahankan pola makan seimbang dengan variasi sayuran lokal, protein seperti tempe dan tahu, serta karbohidrat kompleks seperti beras merah.",
	Overweight:  "Tingkatkan konsumsi sayuran seperti kangkung, daun singkong, perbanyak protein nabati seperti tempe, dan batasi karbohidrat olahan.",
	Obese:       "Prioritaskan sayuran lokal, batasi karbohidrat olahan, ganti dengan ubi jalar atau singkong, dan konsumsi protein tanpa lemak seperti ikan.",
}

type Result struct {
	BMI      float64
	Category Category
	Advice   string
}

// CalculateBMI computes kg/m² rounded to one decimal and classifies it.
func CalculateBMI(weightKg, heightCm float64) (Result, error) {
	if weightKg <= 0 || heightCm <= 0 || math.IsNaN(weightKg) || math.IsNaN(heightCm) {
		return Result{}, ErrInvalidMeasurement
	}

	heightM := heightCm / 100
	bmi := math.Round(weightKg/(heightM*heightM)*10) / 10

	category := Classify(bmi)
	return Result{
		BMI:      bmi,
		Category: category,
		Advice:   advice[category],
	}, nil
}

func Classify(bmi float64) Category {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return Normal
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}
