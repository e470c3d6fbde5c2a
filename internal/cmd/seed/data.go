package seed

import kitchen "github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"

type demoDish struct {
	input kitchen.MenuItemInput
	days  []kitchen.Weekday
}

var demoMenu = []demoDish{
	{input: kitchen.MenuItemInput{Name: "Onion bhaji", Description: "Crisp gram-flour fritters with tamarind chutney", Category: "starter", PricePence: 450, Available: true}},
	{input: kitchen.MenuItemInput{Name: "Vegetable samosa", Description: "Two pastries of spiced potato and pea", Category: "starter", PricePence: 400, Available: true}},
	{
		input: kitchen.MenuItemInput{Name: "Butter chicken", Description: "Tandoori chicken in a tomato and fenugreek sauce", Category: "main", PricePence: 950, Available: true},
		days:  []kitchen.Weekday{kitchen.Monday, kitchen.Wednesday, kitchen.Friday},
	},
	{
		input: kitchen.MenuItemInput{Name: "Tarka dal", Description: "Yellow lentils tempered with garlic and cumin", Category: "main", PricePence: 750, Available: true},
		days:  []kitchen.Weekday{kitchen.Monday, kitchen.Tuesday, kitchen.Wednesday, kitchen.Thursday, kitchen.Friday},
	},
	{
		input: kitchen.MenuItemInput{Name: "Lamb rogan josh", Description: "Slow-cooked lamb with Kashmiri chilli", Category: "main", PricePence: 1150, Available: true},
		days:  []kitchen.Weekday{kitchen.Tuesday, kitchen.Thursday},
	},
	{
		input: kitchen.MenuItemInput{Name: "Chana masala", Description: "Chickpeas in a tangy onion and tomato masala", Category: "main", PricePence: 800, Available: true},
		days:  []kitchen.Weekday{kitchen.Tuesday, kitchen.Friday},
	},
	{input: kitchen.MenuItemInput{Name: "Garlic naan", Category: "side", PricePence: 300, Available: true}},
	{input: kitchen.MenuItemInput{Name: "Pilau rice", Category: "side", PricePence: 325, Available: true}},
	{input: kitchen.MenuItemInput{Name: "Gulab jamun", Description: "Milk dumplings in cardamom syrup", Category: "dessert", PricePence: 375, Available: true}},
	{input: kitchen.MenuItemInput{Name: "Mango lassi", Category: "drink", PricePence: 350, Available: true}},
}

var demoRiders = []struct {
	name  string
	phone string
}{
	{name: "Imran", phone: "07700 900201"},
	{name: "Chloe", phone: "07700 900202"},
}
