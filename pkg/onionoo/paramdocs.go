package onionoo

// parameterDescriptions maps each parameter name to the protocol documentation.
var parameterDescriptions = map[string]string{
	ParamType: "Return only relay (parameter value relay) or only bridge documents " +
		"(parameter value bridge). Parameter values are case-insensitive.",

	ParamRunning: "Return only running (parameter value true) or only non-running relays " +
		"and/or bridges (parameter value false). Parameter values are case-insensitive.",

	ParamSearch: "Return only (1) relays with the parameter value matching (part of a) " +
		"nickname, (possibly $-prefixed) beginning of a hex-encoded fingerprint, any 4 hex " +
		"character block of a space-separated fingerprint, beginning of a base64-encoded " +
		"fingerprint without trailing equal signs, or beginning of an IP address (possibly " +
		"enclosed in square brackets in case of IPv6), (2) bridges with (part of a) nickname " +
		"or (possibly $-prefixed) beginning of a hashed hex-encoded fingerprint, and (3) relays " +
		"and/or bridges matching a given qualified search term. Searches are case-insensitive, " +
		"except for base64-encoded fingerprints.",

	ParamLookup: "Return only the relay with the parameter value matching the fingerprint or " +
		"the bridge with the parameter value matching the hashed fingerprint. Fingerprints " +
		"should always be hashed using SHA-1. Lookups only work for full fingerprints or hashed " +
		"fingerprints consisting of 40 hex characters. Lookups are case-insensitive.",

	ParamCountry: "Return only relays which are located in the given country as identified by " +
		"a two-letter country code. Filtering by country code is case-insensitive. The special " +
		"country code xz can be used for relays that were not found in the GeoIP database.",

	ParamAS: "Return only relays which are located in either one of the given autonomous " +
		"systems (AS) as identified by AS number (with or without preceding \"AS\" part). " +
		"Multiple AS numbers can be provided separated by commas. Filtering by AS number is " +
		"case-insensitive. The special AS number 0 can be used for relays that were not found " +
		"in the GeoIP database.",

	ParamASName: "Return only relays with the parameter value matching (part of) the autonomous " +
		"system (AS) name they are located in. If the parameter value contains spaces, only " +
		"relays are returned which contain all space-separated parts in their AS name. Only " +
		"printable ASCII characters are permitted in the parameter value, some of which need " +
		"to be percent-encoded.",

	ParamFlag: "Return only relays which have the given relay flag assigned by the directory " +
		"authorities. Note that if the flag parameter is specified more than once, only the " +
		"first parameter value will be considered. Filtering by flag is case-insensitive.",

	ParamFirstSeenDays: "Return only relays or bridges which have first been seen during the " +
		"given range of days ago. A parameter value \"x-y\" with x <= y returns relays or " +
		"bridges that have first been seen at least x and at most y days ago. Accepted short " +
		"forms are \"x\", \"x-\", and \"-y\" which are interpreted as \"x-x\", \"x-infinity\", " +
		"and \"0-y\".",

	ParamLastSeenDays: "Return only relays or bridges which have last been seen during the " +
		"given range of days ago. A parameter value \"x-y\" with x <= y returns relays or " +
		"bridges that have last been seen at least x and at most y days ago. Note that relays " +
		"and bridges that haven't been running in the past week are not included in results, " +
		"so that setting x to 8 or higher will lead to an empty result set.",

	ParamFirstSeenSince: "Return only relays or bridges which have first been seen after the " +
		"given date. The date has to be passed in the format \"yyyy-MM-dd\".",

	ParamLastSeenSince: "Return only relays or bridges which have last been seen after the " +
		"given date. The date has to be passed in the format \"yyyy-MM-dd\". Note that relays " +
		"and bridges that haven't been running in the past week are not included in results.",

	ParamContact: "Return only relays with the parameter value matching (part of) the contact " +
		"line. If the parameter value contains spaces, only relays are returned which contain " +
		"all space-separated parts in their contact line. Only printable ASCII characters are " +
		"permitted in the parameter value, some of which need to be percent-encoded. " +
		"Comparisons are case-insensitive.",

	ParamFamily: "Return only the relay whose fingerprint matches the parameter value and all " +
		"relays that this relay has listed in its family by fingerprint and that in turn have " +
		"listed this relay in their family by fingerprint. The provided relay fingerprint must " +
		"consist of 40 hex characters where case does not matter, and it must not be hashed " +
		"using SHA-1. Bridges are not contained in the result.",

	ParamVersion: "Return only relays or bridges running either Tor version from a list or " +
		"range given in the parameter value. Tor versions must be provided without the leading " +
		"\"Tor\" part. Multiple versions can either be provided as a comma-separated list " +
		"(\",\"), as a range separated by two dots (\"..\"), or as a list of ranges. Provided " +
		"versions are parsed and matched by parsed dotted numbers, rather than by string prefix.",

	ParamOS: "Return only relays or bridges running on an operating system that starts with " +
		"the parameter value. Searches are case-insensitive.",

	ParamHostName: "Return only relays with a domain name ending in the given (partial) host " +
		"name. Searches for subdomains of a specific domain should ideally be prefixed with a " +
		"period, for example: \".csail.mit.edu\". Non-ASCII host name characters must be " +
		"encoded as punycode. Filtering by host name is case-insensitive.",

	ParamRecommendedVersion: "Return only relays and bridges running a Tor software version " +
		"that is recommended (parameter value true) or not recommended by the directory " +
		"authorities (parameter value false). Uses the version in the consensus or bridge " +
		"network status. Relays and bridges are not contained in either result, if the version " +
		"they are running is not known. Parameter values are case-insensitive.",

	ParamFields: "Comma-separated list of fields that will be included in the result. So far, " +
		"only top-level fields in relay or bridge objects of details documents can be " +
		"specified, e.g., nickname,hashed_fingerprint. If the fields parameter is provided, " +
		"all other fields which are not contained in the provided list will be removed from " +
		"the result. Field names are case-insensitive.",

	ParamOrder: "Re-order results by a comma-separated list of fields in ascending or " +
		"descending order. Results are first ordered by the first list element, then by the " +
		"second, and so on. Possible fields for ordering are: consensus_weight and first_seen. " +
		"Field names are case-insensitive. Ascending order is the default; descending order " +
		"is selected by prepending fields with a minus sign (-). Field names can be listed at " +
		"most once in either ascending or descending order.",

	ParamOffset: "Skip the given number of relays and/or bridges. Relays are skipped first, " +
		"then bridges. Non-positive offset values are treated as zero and don't change the " +
		"result.",

	ParamLimit: "Limit result to the given number of relays and/or bridges. Relays are kept " +
		"first, then bridges. Non-positive limit values are treated as zero and lead to an " +
		"empty result. When used together with offset, the offsetting step precedes the " +
		"limiting step.",
}

// ParameterDescription returns the documentation of the given parameter.
func ParameterDescription(name string) (string, bool) {
	description, found := parameterDescriptions[name]
	return description, found
}
