package lexicon

import (
	"regexp"
	"strings"
)

// States and union territories of India.
var States = []string{
	"andhra pradesh", "arunachal pradesh", "assam", "bihar", "chhattisgarh", "goa", "gujarat",
	"haryana", "himachal pradesh", "jharkhand", "karnataka", "kerala", "madhya pradesh",
	"maharashtra", "manipur", "meghalaya", "mizoram", "nagaland", "odisha", "orissa", "punjab",
	"rajasthan", "sikkim", "tamil nadu", "tamilnadu", "telangana", "tripura", "uttar pradesh",
	"uttarakhand", "west bengal", "andaman and nicobar", "chandigarh", "dadra and nagar haveli",
	"daman and diu", "delhi", "jammu and kashmir", "ladakh", "lakshadweep", "puducherry",
	"pondicherry",
}

// Districts, cities and well known market towns. Tamil Nadu is listed in
// full; other states by their main agricultural markets.
var Localities = []string{
	// Tamil Nadu
	"ariyalur", "chengalpattu", "chennai", "coimbatore", "kovai", "cuddalore", "dharmapuri",
	"dindigul", "erode", "kallakurichi", "kanchipuram", "kanyakumari", "nagercoil", "karur",
	"krishnagiri", "hosur", "madurai", "mayiladuthurai", "nagapattinam", "namakkal", "nilgiris",
	"ooty", "udhagamandalam", "coonoor", "perambalur", "pudukkottai", "ramanathapuram",
	"ranipet", "salem", "sivaganga", "tenkasi", "thanjavur", "theni", "thoothukudi",
	"tuticorin", "tiruchirappalli", "trichy", "tirunelveli", "tirupathur", "tiruppur",
	"tiruvallur", "tiruvannamalai", "tiruvarur", "vellore", "viluppuram", "villupuram",
	"virudhunagar", "pollachi", "mettupalayam", "oddanchatram", "koyambedu", "kumbakonam",
	"palani", "gobichettipalayam", "sathyamangalam", "udumalpet", "cumbum", "rajapalayam",
	// Karnataka
	"bangalore", "bengaluru", "mysore", "mysuru", "kolar", "chikkaballapur", "hubli",
	"dharwad", "belgaum", "belagavi", "davangere", "shimoga", "shivamogga", "mandya",
	"hassan", "tumkur", "chitradurga", "raichur", "bellary",
	// Kerala
	"kochi", "cochin", "ernakulam", "thrissur", "palakkad", "kozhikode", "thiruvananthapuram",
	"idukki", "wayanad", "kottayam", "kannur",
	// Andhra Pradesh and Telangana
	"hyderabad", "guntur", "kurnool", "madanapalle", "chittoor", "anantapur", "vijayawada",
	"visakhapatnam", "nellore", "warangal", "khammam", "nizamabad",
	// Maharashtra
	"mumbai", "pune", "nashik", "lasalgaon", "nagpur", "aurangabad", "solapur", "kolhapur",
	"sangli", "jalgaon", "ahmednagar", "latur",
	// North, east and west
	"azadpur", "new delhi", "lucknow", "kanpur", "agra", "varanasi", "patna", "kolkata",
	"bhubaneswar", "ranchi", "raipur", "bhopal", "indore", "jaipur", "jodhpur", "kota",
	"ahmedabad", "rajkot", "surat", "vadodara", "unjha", "gondal", "ludhiana", "amritsar",
	"karnal", "hisar", "shimla", "dehradun", "guwahati", "srinagar",
}

// AdminUnits mark a preceding word as a place: "Salem district".
var AdminUnits = []string{"district", "taluk", "taluka", "tehsil", "block", "village", "state", "town", "city", "panchayat"}

// MarketWords mark a preceding word as a market name: "Koyambedu market".
var MarketWords = []string{"mandi", "apmc", "market", "market yard", "uzhavar sandhai", "sandhai"}

// notPlaces are words that can precede a market or admin word, or follow a
// preposition, without naming a place.
var notPlaces = map[string]bool{
	"the": true, "a": true, "an": true, "my": true, "our": true, "your": true, "this": true,
	"that": true, "any": true, "nearest": true, "nearby": true, "near": true, "local": true,
	"today": true, "todays": true, "current": true, "live": true, "wholesale": true,
	"retail": true, "open": true, "daily": true, "stock": true, "share": true, "which": true,
	"what": true, "kg": true, "quintal": true, "rupees": true, "rs": true, "price": true,
	"rate": true, "rates": true, "prices": true, "bulk": true, "future": true, "black": true,
	"same": true, "per": true, "english": true, "tamil": true, "hindi": true, "season": true,
	"summer": true, "winter": true, "monsoon": true, "india": true,
	// time words
	"tomorrow": true, "yesterday": true, "morning": true, "evening": true, "week": true,
	"weekly": true, "month": true, "monday": true, "tuesday": true, "wednesday": true,
	"thursday": true, "friday": true, "saturday": true, "sunday": true, "january": true,
	"february": true, "march": true, "april": true, "may": true, "june": true, "july": true,
	"august": true, "september": true, "october": true, "november": true, "december": true,
	// kinds of market
	"vegetable": true, "vegetables": true, "fruit": true, "fruits": true, "farmers": true,
	"farmer": true, "uzhavar": true, "super": true, "main": true, "big": true, "central": true,
	"grain": true, "flower": true, "fish": true, "cattle": true, "new": true, "old": true,
}

var prepositionPlace = regexp.MustCompile(`\b(?:in|at|near|from|around)\s+((?:[A-Z][a-zA-Z]+)(?:\s+[A-Z][a-zA-Z]+){0,2})`)

// Gazetteer recognizes place references in free text.
type Gazetteer struct {
	names []string
}

// NewGazetteer builds a gazetteer of the built-in places plus extra names.
func NewGazetteer(extra ...string) *Gazetteer {
	names := make([]string, 0, len(States)+len(Localities)+len(extra))
	names = append(names, extra...)
	names = append(names, States...)
	names = append(names, Localities...)

	cleaned := names[:0]
	for _, n := range names {
		if n = strings.TrimSpace(strings.ToLower(n)); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	return &Gazetteer{names: cleaned}
}

// Find returns the place referenced in text, or "" when none is found.
// Outside the gazetteer only capitalized names count.
func (g *Gazetteer) Find(text string) string {
	n := Normalize(text)

	if name, ok := MatchAny(n, g.names); ok {
		return TitleCase(name)
	}
	capitalized := capitalizedWords(text)
	if name := precedingWord(n, capitalized, MarketWords); name != "" {
		return TitleCase(name)
	}
	if name := precedingWord(n, capitalized, AdminUnits); name != "" {
		return TitleCase(name)
	}
	for _, m := range prepositionPlace.FindAllStringSubmatch(text, -1) {
		candidate := strings.ToLower(m[1])
		first := strings.Fields(candidate)[0]
		if !notPlaces[first] && !isVocabulary(first) && CommodityIn(candidate) == "" {
			return m[1]
		}
	}
	return ""
}

// Match reduces a declared place such as "Coimbatore, Tamil Nadu" or
// "Coimbatore District" to the name a price listing would mention.
func (g *Gazetteer) Match(place string) string {
	place = strings.TrimSpace(place)
	if place == "" {
		return ""
	}
	head := strings.TrimSpace(strings.Split(place, ",")[0])
	if name, ok := MatchAny(Normalize(head), g.names); ok {
		return TitleCase(name)
	}
	words := strings.Fields(head)
	for len(words) > 1 && isVocabulary(strings.ToLower(words[len(words)-1])) {
		words = words[:len(words)-1]
	}
	if len(words) == 0 {
		return place
	}
	return strings.Join(words, " ")
}

var capitalizedWord = regexp.MustCompile(`\b[A-Z][a-zA-Z]+\b`)

func capitalizedWords(text string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range capitalizedWord.FindAllString(text, -1) {
		out[strings.ToLower(w)] = true
	}
	return out
}

// precedingWord finds "<Word> <marker>" where Word is a capitalized name.
func precedingWord(normalized string, capitalized map[string]bool, markers []string) string {
	words := strings.Fields(normalized)
	for _, marker := range markers {
		mw := strings.Fields(marker)
		for i := 1; i+len(mw) <= len(words); i++ {
			if strings.Join(words[i:i+len(mw)], " ") != marker {
				continue
			}
			candidate := words[i-1]
			if len(candidate) < 3 || !capitalized[candidate] || notPlaces[candidate] || isVocabulary(candidate) {
				continue
			}
			return candidate
		}
	}
	return ""
}

func isVocabulary(word string) bool {
	if CommodityIn(word) != "" {
		return true
	}
	padded := " " + word + " "
	for _, list := range [][]string{PriceTerms, SchemeTerms, MarketWords, AdminUnits} {
		if _, ok := MatchAny(padded, list); ok {
			return true
		}
	}
	return false
}
