package stocks

// falsePositives lists tokens that look like tickers but are common English
// words, grammatical particles, business acronyms or country codes. No live
// exchange lookup runs during extraction (it burned through rate limits),
// so this static set is the sole false-positive defense. Duplicates in the
// source list are harmless and kept as-is.
var falsePositives = []string{
	// Common English words (2-5 letters)
	"THE", "AND", "FOR", "ARE", "BUT", "NOT", "YOU", "ALL", "CAN", "HER", "WAS", "ONE", "OUR", "HAD", "WHAT", "WERE", "WHEN", "YOUR", "HOW", "SAID", "EACH", "WHICH", "THEIR", "TIME", "WILL", "ABOUT", "IF", "UP", "OUT", "MANY", "THEN", "THEM", "THESE", "SO", "SOME", "WOULD", "MAKE", "LIKE", "INTO", "HIM", "HAS", "MORE", "GO", "NO", "WAY", "COULD", "MY", "THAN", "FIRST", "BEEN", "CALL", "WHO", "ITS", "NOW", "FIND", "LONG", "DOWN", "DAY", "DID", "GET", "COME", "MADE", "MAY", "PART", "NEW", "WORK", "USE", "MAN", "FIND", "GIVE", "JUST", "WHERE", "MOST", "GOOD", "MUCH", "SOME", "TIME", "VERY", "WHEN", "COME", "HERE", "JUST", "LIKE", "LONG", "MAKE", "MANY", "OVER", "SUCH", "TAKE", "THAN", "THEM", "WELL", "WERE", "TODAY",
	// Business/Finance Terms
	"CEO", "CFO", "COO", "CTO", "CMO", "CRO", "CCO", "CDO", "CIO", "CLO", "CPO",
	"IPO", "ICO", "SPO", "APO", "ETF", "REIT", "SPAC",
	"EPS", "P2E", "PEG", "ROI", "ROE", "ROA", "IRR", "NPV", "DCF",
	"SEC", "FDA", "EPA", "DOJ", "FTC", "IRS", "IMF", "FED",
	"AI", "ML", "AR", "VR", "IoT", "SaaS", "PaaS", "IaaS",
	"DD", "TA", "FA", "SI", "DCA", "FOMO", "FUD", "ASDAQ", "PRICE", "PVOTE", "FULL",
	"POST", "OCKED", "WEEK", "LLING", "UEEZE", "LINE", "PANIC", "VEGAN", "CKING", "EYOND",
	"ARKET", "STILL", "HODL", "COUNT", "READ", "LIFE", "SHO", "LDERS", "TRONG", "PENED",
	// Tech/Business Common Words
	"API", "SDK", "UI", "UX", "QA", "PM", "HR", "PR", "IT", "IS", "TO", "YOLO", "TLDR",
	// Common Business Terms
	"INC", "LLC", "LTD", "CORP", "CO", "HOLDINGS", "GROUP", "INTL", "TECH", "GAAP",
	"YTD", "EOD", "ROW", "QTD", "MTD", "FY", "CY", "EST", "PDT", "GMT",
	"PURE", "WORTH", "HAVE", "WITH", "INESS", "HIVE", "NEXT", "LAST", "BEST",
	"FREE", "PAID", "CALL", "PUT", "BID", "ASK", "NET", "GROSS", "TOTAL", "CHAT", "CROWD",
	"BACK", "ONLY", "KNOW", "WHY", "APES",
	// Common Prepositions/Articles/Conjunctions
	"IN", "ON", "AT", "BY", "OF", "OR", "AN", "AS", "BE", "DO", "IF", "SO", "UP", "VS",
	// Common Verbs
	"AM", "IS", "ARE", "WAS", "WERE", "BE", "BEEN", "GO", "GOES", "WENT",
	"DO", "DOES", "DID", "DONE", "SEE", "SEEN", "SAW", "GET", "GOT", "HOLD", "BUY", "SELL",
	// Common Adjectives
	"BIG", "BAD", "LOW", "HIGH", "HOT", "COLD", "FAST", "SLOW", "GOOD",
	// Common Pronouns
	"HE", "SHE", "IT", "WE", "YOU", "THEY", "WHO", "WHAT", "THIS", "THAT",
	// Additional Common Words (3-4 letters)
	"CAT", "DOG", "CAR", "BUS", "TRAIN", "PLANE", "SHIP", "BOAT", "BIKE",
	"HOME", "HOUSE", "ROOM", "DOOR", "WINDOW", "TABLE", "CHAIR", "BED",
	"FOOD", "WATER", "MILK", "BREAD", "MEAT", "FISH", "CHICKEN",
	"BOOK", "PEN", "PAPER", "PHONE", "COMPUTER", "LAPTOP", "TV",
	"MONEY", "CASH", "CARD", "BANK", "SHOP", "STORE", "MALL",
	"GAME", "PLAY", "FUN", "HAPPY", "SAD", "MAD", "TIRED", "SICK",
	"FRIEND", "FAMILY", "MOTHER", "FATHER", "BROTHER", "SISTER",
	"SCHOOL", "TEACHER", "STUDENT", "CLASS", "TEST", "EXAM",
	"JOB", "WORK", "BOSS", "EMPLOYEE", "OFFICE", "MEETING",
	"HEALTH", "DOCTOR", "HOSPITAL", "MEDICINE", "PILL",
	"SPORT", "FOOTBALL", "BASKETBALL", "TENNIS", "GOLF",
	"MUSIC", "SONG", "MOVIE", "FILM", "SHOW", "PARTY",
	"TRAVEL", "VACATION", "HOTEL", "RESTAURANT", "COFFEE",
	"WEATHER", "SUN", "RAIN", "SNOW", "WIND", "CLOUD",
	"COLOR", "RED", "BLUE", "GREEN", "YELLOW", "BLACK", "WHITE",
	"NUMBER", "ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT", "NINE", "TEN",
	// Common Abbreviations
	"USA", "UK", "EU", "UN", "NATO", "WHO", "UNESCO", "NASA", "FBI", "CIA", "MOON",
	"TV", "PC", "CD", "DVD", "USB", "GPS", "WiFi", "HTML", "CSS", "JS",
	"AM", "PM", "AD", "BC", "ETC", "EG", "IE", "VS", "AKA", "FYI",
	// Common Acronyms
	"OK", "OKAY", "YES", "NO", "YES", "NO", "OK", "OKAY",
	"LOL", "OMG", "WTF", "BTW", "FYI", "ASAP", "RSVP", "VIP", "USD",
	// Common Contractions and Short Forms
	"DONT", "WONT", "CANT", "SHOULDNT", "WOULDNT", "COULDNT",
	"IM", "YOURE", "HES", "SHES", "ITS", "WERE", "THEYRE",
	"IVE", "YOUVE", "WEVE", "THEYVE", "HASNT", "HAVENT",
}

// invalidSymbols are uppercase country-code artifacts stripped from the
// aggregate map after the cross-source merge, as a final sanitation pass.
var invalidSymbols = []string{
	"US", "UK", "EU", "CA", "DE", "FR", "IT", "ES", "NL", "SE", "NO", "DK",
	"FI", "CH", "AT", "BE", "IE", "PT", "GR", "PL", "CZ", "HU", "SK", "SI",
	"HR", "BG", "RO", "LT", "LV", "EE", "CY", "MT", "LU",
}

// DefaultExclusions returns the exclusion set used by the extractor.
func DefaultExclusions() map[string]struct{} {
	set := make(map[string]struct{}, len(falsePositives))
	for _, w := range falsePositives {
		set[w] = struct{}{}
	}
	return set
}

// InvalidSymbols returns the post-merge sanitation list.
func InvalidSymbols() []string {
	out := make([]string, len(invalidSymbols))
	copy(out, invalidSymbols)
	return out
}
