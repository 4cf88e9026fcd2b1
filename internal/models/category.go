package models

import (
	"github.com/google/uuid"
)

type Category struct {
	ID    uuid.UUID `db:"id"`
	Label string    `db:"label"`
	Color string    `db:"color"`
}

// Category labels with special meaning to recurring detection.
const (
	LabelCreditCardPayment  = "Credit Card Payment"
	LabelInvestmentFunds    = "Investment and Retirement Funds"
	LabelTransfer           = "Transfer"
	LabelAccountTransfer    = "Account Transfer"
	LabelFastFood           = "Fast Food"
	LabelConvenienceStores  = "Convenience Stores"
	LabelRestaurants        = "Restaurants"
	LabelGasAndElectricity  = "Gas and Electricity"
	LabelWater              = "Water"
	LabelInternet           = "Internet"
	LabelInsurance          = "Insurance"
	LabelHomePhone          = "Home Phone"
	LabelMobilePhone        = "Mobile Phone"
	LabelCable              = "Cable"
	LabelCoffee             = "Coffee"
	LabelGas                = "Gas"
	LabelTaxisAndRideShares = "Taxis and Ride Shares"
	LabelDiscountStores     = "Discount Stores"
	LabelFoodAndDrink       = "Food and Drink"
)
