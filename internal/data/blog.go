package data

import "github.com/nirmaanhomes/backend/internal/models"

var BlogPosts = []models.BlogPost{
	{
		ID:          "monsoon-construction-practices",
		Title:       "How We Keep Construction on Schedule Through the Monsoon",
		Excerpt:     "Waterproofing sequences, curing discipline, and the planning buffer that keeps towers rising through Pune's wettest months.",
		Content:     "Every June the question returns: does the monsoon stall construction? On our sites it does not, and the reason is sequencing...",
		Author:      "Anil Deshpande",
		PublishDate: "2025-06-10",
		Category:    models.BlogConstructionUpdates,
		Tags:        []string{"monsoon", "site-management"},
		ReadTime:    6,
	},
	{
		ID:          "home-loan-rates-2025",
		Title:       "What Falling Home Loan Rates Mean for Buyers in 2025",
		Excerpt:     "With lending rates easing, the EMI on a ₹50 lakh loan has dropped meaningfully. Here is the arithmetic.",
		Content:     "A 50 basis point cut changes more than the headline rate. On a twenty-year ₹50 lakh loan, the monthly installment falls by roughly...",
		Author:      "Meera Kulkarni",
		PublishDate: "2025-04-18",
		Category:    models.BlogMarketInsights,
		Tags:        []string{"home-loans", "emi"},
		ReadTime:    4,
	},
	{
		ID:          "skyline-heights-tower-a-topping-out",
		Title:       "Skyline Heights Tower A Tops Out",
		Excerpt:     "The eighteenth and final slab of Tower A was cast this week, two weeks ahead of plan.",
		Content:     "Tower A of Skyline Heights reached its full height this week with the casting of the terrace slab...",
		Author:      "Site Communications",
		PublishDate: "2025-02-02",
		Category:    models.BlogCompanyNews,
		Tags:        []string{"skyline-heights", "milestones"},
		ReadTime:    2,
	},
	{
		ID:          "rera-what-buyers-should-check",
		Title:       "Five RERA Details Every Buyer Should Check Before Booking",
		Excerpt:     "The registration number is only the start. Here is what the RERA portal actually tells you about a project.",
		Content:     "Most buyers stop at confirming that a project carries a RERA number. The portal holds far more useful detail...",
		Author:      "Meera Kulkarni",
		PublishDate: "2024-11-25",
		Category:    models.BlogNews,
		Tags:        []string{"rera", "buying-guide"},
		ReadTime:    5,
	},
}
