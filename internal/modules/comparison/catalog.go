package comparison

import "ridecompare/internal/modules/pricing"

// offering is a catalogue entry: how a provider's ride type is priced and
// what ranges its generated attributes fall in.
type offering struct {
	id       int
	provider Provider
	display  string
	tariff   string
	category Category
	discount bool

	// surgeAbove: a draw above this threshold prices at surgeHit, otherwise surgeMiss.
	surgeAbove float64
	surgeHit   pricing.SurgeLevel
	surgeMiss  pricing.SurgeLevel

	etaMin, etaSpread       int
	minutesPer5Km           float64
	ratingBase, ratingRange float64
	ecoBase, ecoRange       float64

	driver  string
	vehicle string
}

var catalog = []offering{
	{
		id: 1, provider: ProviderUber, display: "UberGo", tariff: "UberGo", category: CategorySedan, discount: true,
		surgeAbove: 0.7, surgeHit: pricing.SurgeLow, surgeMiss: pricing.SurgeNone,
		etaMin: 2, etaSpread: 5, minutesPer5Km: 15,
		ratingBase: 4.5, ratingRange: 0.5, ecoBase: 7, ecoRange: 1.5,
		driver: "Rajesh K.", vehicle: "Swift Dzire - KA01AB1234",
	},
	{
		id: 2, provider: ProviderOla, display: "Ola Mini", tariff: "Ola Mini", category: CategorySedan,
		surgeAbove: 0.6, surgeHit: pricing.SurgeMedium, surgeMiss: pricing.SurgeNone,
		etaMin: 3, etaSpread: 5, minutesPer5Km: 16,
		ratingBase: 4.4, ratingRange: 0.5, ecoBase: 7, ecoRange: 1.5,
		driver: "Suresh M.", vehicle: "Wagon R - KA02CD5678",
	},
	{
		id: 3, provider: ProviderRapido, display: "Bike", tariff: "Rapido Bike", category: CategoryBike,
		surgeAbove: 1, surgeHit: pricing.SurgeNone, surgeMiss: pricing.SurgeNone,
		etaMin: 1, etaSpread: 3, minutesPer5Km: 12,
		ratingBase: 4.3, ratingRange: 0.5, ecoBase: 8.5, ecoRange: 1,
		driver: "Amit S.", vehicle: "Pulsar - KA03EF9012",
	},
	{
		id: 4, provider: ProviderUber, display: "UberAuto", tariff: "UberAuto", category: CategoryAuto, discount: true,
		surgeAbove: 1, surgeHit: pricing.SurgeNone, surgeMiss: pricing.SurgeNone,
		etaMin: 2, etaSpread: 4, minutesPer5Km: 20,
		ratingBase: 4.6, ratingRange: 0.3, ecoBase: 8, ecoRange: 1,
		driver: "Venkat R.", vehicle: "Auto - KA04GH3456",
	},
	{
		id: 5, provider: ProviderOla, display: "Ola Auto", tariff: "Ola Auto", category: CategoryAuto,
		surgeAbove: 0.7, surgeHit: pricing.SurgeHigh, surgeMiss: pricing.SurgeMedium,
		etaMin: 3, etaSpread: 5, minutesPer5Km: 22,
		ratingBase: 4.4, ratingRange: 0.4, ecoBase: 8, ecoRange: 1,
		driver: "Kumar P.", vehicle: "Auto - KA05IJ7890",
	},
	{
		id: 6, provider: ProviderUber, display: "Premier", tariff: "Uber Premier", category: CategoryPremium,
		surgeAbove: 0.8, surgeHit: pricing.SurgeLow, surgeMiss: pricing.SurgeNone,
		etaMin: 3, etaSpread: 4, minutesPer5Km: 14,
		ratingBase: 4.7, ratingRange: 0.3, ecoBase: 6, ecoRange: 1,
		driver: "Anil G.", vehicle: "Honda City - KA06KL2345",
	},
}

var bookingURLs = map[Provider]string{
	ProviderUber:   "https://m.uber.com/ul/?action=setPickup",
	ProviderOla:    "https://book.olacabs.com/",
	ProviderRapido: "https://www.rapido.bike/",
}

// Providers lists the providers in catalogue order.
func Providers() []Provider {
	return []Provider{ProviderUber, ProviderOla, ProviderRapido}
}
