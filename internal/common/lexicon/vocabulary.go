package lexicon

// DiseaseTerms describe visible crop damage, pests or disease.
var DiseaseTerms = []string{
	"disease", "diseased", "infection", "infected", "pest", "pests", "insect", "insects",
	"worm", "worms", "caterpillar", "caterpillars", "aphid", "aphids", "whitefly", "mites",
	"borer", "thrips", "fungus", "fungal", "mildew", "mould", "mold", "blight", "wilt",
	"wilting", "rot", "rotting", "rust", "spot", "spots", "lesion", "lesions", "curl",
	"curling", "yellowing", "yellow leaves", "brown leaves", "holes in", "virus", "bacterial",
	"dying", "drying leaves", "leaf drop", "symptom", "symptoms",
}

// DamageTerms count as disease only next to a PlantParts word, so "crop
// damage insurance" stays a scheme question.
var DamageTerms = []string{"damage", "damaged", "damaging"}

var PlantParts = []string{
	"leaf", "leaves", "stem", "stems", "fruit", "fruits", "root", "roots",
}

// DescribesDisease reports disease vocabulary in normalized text.
func DescribesDisease(normalized string) bool {
	if _, ok := MatchAny(normalized, DiseaseTerms); ok {
		return true
	}
	if _, ok := MatchAny(normalized, DamageTerms); !ok {
		return false
	}
	_, ok := MatchAny(normalized, PlantParts)
	return ok
}

// PriceTerms signal a request for a current commodity price.
var PriceTerms = []string{
	"price", "prices", "rate", "rates", "bhav", "bhaav", "cost", "costs", "selling price",
	"market price", "mandi price", "mandi rate", "how much per kg", "per quintal",
}

// SchemeTerms cover subsidies, loans, machinery, irrigation and other
// government support.
var SchemeTerms = []string{
	"scheme", "schemes", "subsidy", "subsidies", "yojana", "loan", "loans", "credit",
	"kisan credit card", "kcc", "pmksy", "midh", "pm kisan", "pmkisan", "pmfby", "insurance",
	"machinery", "machine", "machines", "tractor", "tractors", "equipment", "irrigation",
	"drip", "sprinkler", "government", "govt", "grant", "grants", "benefit", "benefits",
	"support", "assistance", "pension", "apply for",
}

// CultivationTerms cover crop planning, soil and growing advice.
var CultivationTerms = []string{
	"grow", "growing", "plant", "planting", "sow", "sowing", "cultivate", "cultivation",
	"crop", "crops", "soil", "fertilizer", "fertiliser", "manure", "compost", "organic",
	"harvest", "yield", "season", "seeds", "seed", "suitable", "rotation", "intercrop",
	"value added", "value addition", "processing", "surplus", "not getting sold", "weather",
	"rain", "rainfall",
}

// PlanningTerms turn a bare location mention into a planning question.
var PlanningTerms = []string{
	"what should i", "what can i", "which", "best", "advice", "recommend", "plan", "should i",
}

// TimeTerms identify date and time questions.
var TimeTerms = []string{
	"time", "date", "today s date", "what day", "day is it", "day today", "current time",
	"time now", "which day", "month", "year is it",
}

// Commodities seen in market questions, singular form.
var Commodities = []string{
	"tomato", "onion", "potato", "brinjal", "cabbage", "cauliflower", "carrot", "beans",
	"chilli", "green chilli", "okra", "ladies finger", "drumstick", "garlic", "ginger",
	"turmeric", "coriander", "banana", "mango", "coconut", "copra", "papaya", "grapes",
	"rice", "paddy", "wheat", "maize", "ragi", "jowar", "bajra", "cotton", "groundnut",
	"sugarcane", "soybean", "mustard", "tur", "urad", "moong", "chana", "jaggery", "tea",
	"coffee", "cardamom", "pepper", "arecanut", "cashew", "tapioca", "sunflower",
}

// CommodityIn returns the first commodity named in text, matching simple plurals.
func CommodityIn(text string) string {
	n := Normalize(text)
	for _, c := range Commodities {
		if ContainsTerm(n, c) || ContainsTerm(n, c+"s") || ContainsTerm(n, c+"es") {
			return c
		}
	}
	return ""
}
