package typeinf

import "strings"

// Membership tables for the geographic testers. Lookups are case-insensitive;
// keys are stored upper-case for codes and lower-case for names.

var countryCodes2 = toSet(strings.Fields(`
AD AE AF AG AI AL AM AO AQ AR AS AT AU AW AX AZ BA BB BD BE BF BG BH BI BJ BL
BM BN BO BQ BR BS BT BV BW BY BZ CA CC CD CF CG CH CI CK CL CM CN CO CR CU CV
CW CX CY CZ DE DJ DK DM DO DZ EC EE EG EH ER ES ET FI FJ FK FM FO FR GA GB GD
GE GF GG GH GI GL GM GN GP GQ GR GS GT GU GW GY HK HM HN HR HT HU ID IE IL IM
IN IO IQ IR IS IT JE JM JO JP KE KG KH KI KM KN KP KR KW KY KZ LA LB LC LI LK
LR LS LT LU LV LY MA MC MD ME MF MG MH MK ML MM MN MO MP MQ MR MS MT MU MV MW
MX MY MZ NA NC NE NF NG NI NL NO NP NR NU NZ OM PA PE PF PG PH PK PL PM PN PR
PS PT PW PY QA RE RO RS RU RW SA SB SC SD SE SG SH SI SJ SK SL SM SN SO SR SS
ST SV SX SY SZ TC TD TF TG TH TJ TK TL TM TN TO TR TT TV TW TZ UA UG UM US UY
UZ VA VC VE VG VI VN VU WF WS YE YT ZA ZM ZW
`))

var countryCodes3 = toSet(strings.Fields(`
AND ARE AFG ATG AIA ALB ARM AGO ATA ARG ASM AUT AUS ABW ALA AZE BIH BRB BGD
BEL BFA BGR BHR BDI BEN BLM BMU BRN BOL BES BRA BHS BTN BVT BWA BLR BLZ CAN
CCK COD CAF COG CHE CIV COK CHL CMR CHN COL CRI CUB CPV CUW CXR CYP CZE DEU
DJI DNK DMA DOM DZA ECU EST EGY ESH ERI ESP ETH FIN FJI FLK FSM FRO FRA GAB
GBR GRD GEO GUF GGY GHA GIB GRL GMB GIN GLP GNQ GRC SGS GTM GUM GNB GUY HKG
HMD HND HRV HTI HUN IDN IRL ISR IMN IND IOT IRQ IRN ISL ITA JEY JAM JOR JPN
KEN KGZ KHM KIR COM KNA PRK KOR KWT CYM KAZ LAO LBN LCA LIE LKA LBR LSO LTU
LUX LVA LBY MAR MCO MDA MNE MAF MDG MHL MKD MLI MMR MNG MAC MNP MTQ MRT MSR
MLT MUS MDV MWI MEX MYS MOZ NAM NCL NER NFK NGA NIC NLD NOR NPL NRU NIU NZL
OMN PAN PER PYF PNG PHL PAK POL SPM PCN PRI PSE PRT PLW PRY QAT REU ROU SRB
RUS RWA SAU SLB SYC SDN SWE SGP SHN SVN SJM SVK SLE SMR SEN SOM SUR SSD STP
SLV SXM SYR SWZ TCA TCD ATF TGO THA TJK TKL TLS TKM TUN TON TUR TTO TUV TWN
TZA UKR UGA UMI USA URY UZB VAT VCT VEN VGB VIR VNM VUT WLF WSM YEM MYT ZAF
ZMB ZWE
`))

var countryNames = toSet([]string{
	"afghanistan", "albania", "algeria", "andorra", "angola", "argentina",
	"armenia", "australia", "austria", "azerbaijan", "bahamas", "bahrain",
	"bangladesh", "barbados", "belarus", "belgium", "belize", "benin",
	"bhutan", "bolivia", "bosnia and herzegovina", "botswana", "brazil",
	"brunei", "bulgaria", "burkina faso", "burundi", "cambodia", "cameroon",
	"canada", "cape verde", "central african republic", "chad", "chile",
	"china", "colombia", "comoros", "congo", "costa rica", "croatia", "cuba",
	"cyprus", "czech republic", "czechia", "denmark", "djibouti", "dominica",
	"dominican republic", "ecuador", "egypt", "el salvador",
	"equatorial guinea", "eritrea", "estonia", "eswatini", "ethiopia", "fiji",
	"finland", "france", "gabon", "gambia", "georgia", "germany", "ghana",
	"greece", "grenada", "guatemala", "guinea", "guinea-bissau", "guyana",
	"haiti", "honduras", "hungary", "iceland", "india", "indonesia", "iran",
	"iraq", "ireland", "israel", "italy", "ivory coast", "jamaica", "japan",
	"jordan", "kazakhstan", "kenya", "kiribati", "kuwait", "kyrgyzstan",
	"laos", "latvia", "lebanon", "lesotho", "liberia", "libya",
	"liechtenstein", "lithuania", "luxembourg", "madagascar", "malawi",
	"malaysia", "maldives", "mali", "malta", "marshall islands", "mauritania",
	"mauritius", "mexico", "micronesia", "moldova", "monaco", "mongolia",
	"montenegro", "morocco", "mozambique", "myanmar", "namibia", "nauru",
	"nepal", "netherlands", "new zealand", "nicaragua", "niger", "nigeria",
	"north korea", "north macedonia", "norway", "oman", "pakistan", "palau",
	"panama", "papua new guinea", "paraguay", "peru", "philippines", "poland",
	"portugal", "qatar", "romania", "russia", "rwanda", "saint lucia",
	"samoa", "san marino", "saudi arabia", "senegal", "serbia", "seychelles",
	"sierra leone", "singapore", "slovakia", "slovenia", "solomon islands",
	"somalia", "south africa", "south korea", "south sudan", "spain",
	"sri lanka", "sudan", "suriname", "sweden", "switzerland", "syria",
	"taiwan", "tajikistan", "tanzania", "thailand", "togo", "tonga",
	"trinidad and tobago", "tunisia", "turkey", "turkmenistan", "tuvalu",
	"uganda", "ukraine", "united arab emirates", "united kingdom",
	"united states", "united states of america", "uruguay", "uzbekistan",
	"vanuatu", "venezuela", "vietnam", "yemen", "zambia", "zimbabwe",
})

var continentNames = toSet([]string{
	"africa", "antarctica", "asia", "europe", "north america", "oceania",
	"south america",
})

var cityNames = toSet([]string{
	"amsterdam", "athens", "atlanta", "auckland", "bangkok", "barcelona",
	"beijing", "berlin", "bogota", "boston", "brussels", "budapest",
	"buenos aires", "cairo", "calgary", "cape town", "caracas", "chicago",
	"copenhagen", "dallas", "delhi", "denver", "detroit", "dubai", "dublin",
	"frankfurt", "geneva", "hamburg", "hanoi", "havana", "helsinki",
	"hong kong", "houston", "istanbul", "jakarta", "johannesburg", "karachi",
	"kyiv", "lagos", "lima", "lisbon", "london", "los angeles", "madrid",
	"manila", "melbourne", "mexico city", "miami", "milan", "montreal",
	"moscow", "mumbai", "munich", "nairobi", "new york", "osaka", "oslo",
	"ottawa", "paris", "philadelphia", "phoenix", "prague", "rio de janeiro",
	"rome", "san francisco", "santiago", "sao paulo", "seattle", "seoul",
	"shanghai", "singapore", "stockholm", "sydney", "taipei", "tehran",
	"tokyo", "toronto", "vancouver", "vienna", "warsaw", "zurich",
})

var monthNames = toSet([]string{
	"january", "february", "march", "april", "may", "june", "july", "august",
	"september", "october", "november", "december",
	"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept", "oct",
	"nov", "dec",
})

var dayNames = toSet([]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
	"sunday", "mon", "tue", "tues", "wed", "thu", "thur", "thurs", "fri",
	"sat", "sun",
})

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func isCountryCode2(v string) bool {
	_, ok := countryCodes2[strings.ToUpper(v)]
	return ok
}

func isCountryCode3(v string) bool {
	_, ok := countryCodes3[strings.ToUpper(v)]
	return ok
}

func isCountryName(v string) bool {
	_, ok := countryNames[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

func isContinentName(v string) bool {
	_, ok := continentNames[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

func isCityName(v string) bool {
	_, ok := cityNames[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

func isMonthName(v string) bool {
	_, ok := monthNames[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

func isDayName(v string) bool {
	_, ok := dayNames[strings.ToLower(strings.TrimSpace(v))]
	return ok
}
