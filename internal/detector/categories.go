package detector

import (
	"recurring-detector/internal/models"
)

// ExcludedCategoryLabels are non-spending categories dropped before any grouping.
var ExcludedCategoryLabels = []string{
	models.LabelCreditCardPayment,
	models.LabelInvestmentFunds,
	models.LabelTransfer,
	models.LabelAccountTransfer,
}

type categoryClass int

const (
	classDefault categoryClass = iota
	// classHardExcluded never yields a candidate.
	classHardExcluded
	// classUtility bills on irregular cycles and gets wide interval tolerance.
	classUtility
	// classVariable covers habitual purchases that need stricter consistency checks.
	classVariable
)

var categoryClasses = map[string]categoryClass{
	models.LabelFastFood:           classHardExcluded,
	models.LabelConvenienceStores:  classHardExcluded,
	models.LabelRestaurants:        classHardExcluded,
	models.LabelGasAndElectricity:  classUtility,
	models.LabelWater:              classUtility,
	models.LabelInternet:           classUtility,
	models.LabelInsurance:          classUtility,
	models.LabelHomePhone:          classUtility,
	models.LabelMobilePhone:        classUtility,
	models.LabelCable:              classUtility,
	models.LabelCoffee:             classVariable,
	models.LabelGas:                classVariable,
	models.LabelTaxisAndRideShares: classVariable,
	models.LabelDiscountStores:     classVariable,
	models.LabelFoodAndDrink:       classVariable,
}

func classify(label string) categoryClass {
	if class, ok := categoryClasses[label]; ok {
		return class
	}
	return classDefault
}
