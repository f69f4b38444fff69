package scoring

import "regexp"

// Sub-score bounds. The combination rule per sub-score (max for titles,
// short-circuit-then-cap for company, sum-and-cap for remote, step function
// for freshness) is the engine's contract; the weights themselves are tunable.
const (
	titleMax     = 50
	companyMin   = -30
	companyMax   = 25
	remoteMax    = 10
	freshnessMax = 15

	enterprisePenalty = -30
	recruiterPenalty  = -20

	unknownDateFreshness = 5
	baseOffset           = 5
)

type weightedPattern struct {
	re     *regexp.Regexp
	weight int
}

func pattern(expr string, weight int) weightedPattern {
	return weightedPattern{re: regexp.MustCompile(expr), weight: weight}
}

// Title seniority patterns. Exact C-level titles score highest; multiple
// matches take the single best weight since they describe the same level.
var titlePatterns = []weightedPattern{
	pattern(`\bchief product officer\b`, 50),
	pattern(`\bcpto\b`, 50),
	pattern(`\bchief product (?:&|and) technology officer\b`, 48),
	pattern(`\bsvp[,.]? (?:of )?product\b`, 28),
	pattern(`\bvp[,.]? (?:of )?product\b`, 25),
	pattern(`\bvice president[,.]? (?:of )?product\b`, 25),
	pattern(`\bhead of product\b`, 22),
	pattern(`\bproduct leader\b`, 15),
	pattern(`\bdirector[,.]? (?:of )?product\b`, 8),
}

// Large established employers are not the target customer: a match is a hard
// floor penalty checked against the company name only.
var enterpriseKeywords = []string{
	"jpmorgan", "jpmorganchase", "jp morgan", "goldman sachs", "bank of america",
	"wells fargo", "citigroup", "citi", "morgan stanley", "u.s. bank", "us bank",
	"capital one", "american express", "amex", "visa", "mastercard",
	"google", "alphabet", "meta", "amazon", "apple", "microsoft", "netflix",
	"walmart", "target", "costco", "home depot", "lowes",
	"unitedhealth", "anthem", "cigna", "aetna", "humana", "kaiser",
	"pfizer", "johnson & johnson", "j&j", "merck", "abbvie",
	"at&t", "verizon", "t-mobile", "comcast",
	"boeing", "lockheed", "raytheon", "northrop",
	"exxon", "chevron", "shell", "bp",
	"ford", "gm", "general motors", "toyota", "tesla",
	"ibm", "oracle", "sap", "salesforce", "cisco", "intel", "nvidia",
	"accenture", "deloitte", "mckinsey", "bain", "bcg",
	"disney", "warner", "paramount", "fox",
	"procter & gamble", "p&g", "unilever", "coca-cola", "pepsi",
	"bny", "state street", "fidelity", "vanguard", "blackrock",
	"trane technologies", "honeywell", "3m", "ge", "general electric",
	"sharkninja", "teradata", "hyland",
}

// Staffing and recruiting firms post on behalf of others.
var recruiterKeywords = []string{
	"lensa", "talently", "talener", "heidrick", "korn ferry", "spencer stuart",
	"robert half", "randstad", "adecco", "manpower", "kelly services",
	"hays", "michael page", "page group", "coda search", "staffing",
	"recruiting", "talent acquisition", "executive search", "search firm",
	"daley and associates", "christian & timbers", "brydon group",
	"selby jennings", "nxt level", "droisys",
}

// Startup stage, engagement model and vertical signals. Summed, capped.
var startupSignals = []weightedPattern{
	pattern(`\bseries [a-c]\b`, 15),
	pattern(`\bseed\b`, 10),
	pattern(`\bstartup\b`, 10),
	pattern(`\bearly[- ]stage\b`, 12),
	pattern(`\bgrowth[- ]stage\b`, 8),
	pattern(`\bscale[- ]up\b`, 8),
	pattern(`\bfirst (?:product )?hire\b`, 15),
	pattern(`\bbuild(?:ing)? (?:the |a )?product (?:team|org|function)\b`, 12),
	pattern(`\bfractional\b`, 15),
	pattern(`\binterim\b`, 10),
	pattern(`\bcontract\b`, 5),
	pattern(`\bpart[- ]time\b`, 5),
	pattern(`\bventure[- ]backed\b`, 8),
	pattern(`\bvc[- ]backed\b`, 8),
	pattern(`\bsaas\b`, 5),
	pattern(`\bb2b\b`, 3),
	pattern(`\bfintech\b`, 5),
	pattern(`\bhealthtech\b`, 5),
	pattern(`\bedtech\b`, 5),
	pattern(`\bproptech\b`, 5),
	pattern(`\bmarketplace\b`, 3),
}

var remoteSignals = []weightedPattern{
	pattern(`\bremote\b`, 8),
	pattern(`\bhybrid\b`, 3),
	pattern(`\bwork from anywhere\b`, 8),
	pattern(`\bdistributed\b`, 5),
}
