package resolve

import (
	"github.com/meenmo/bondlib/bond"
	"github.com/meenmo/bondlib/calendar"
)

type issuerProfile struct {
	issuer      string
	currency    string
	conventions bond.ConventionSet
}

// sovereignProfiles maps well-known government tickers to their market
// conventions. These match Bloomberg DES pages for the respective markets.
var sovereignProfiles = map[string]issuerProfile{
	"T": {"US Treasury", "USD", bond.ConventionSet{
		DayCount: bond.DCActAct, Frequency: bond.Semiannual,
		BusinessDayRule: calendar.Following, Calendar: calendar.US,
	}},
	"UST": {"US Treasury", "USD", bond.ConventionSet{
		DayCount: bond.DCActAct, Frequency: bond.Semiannual,
		BusinessDayRule: calendar.Following, Calendar: calendar.US,
	}},
	"UKT": {"United Kingdom Gilt", "GBP", bond.ConventionSet{
		DayCount: bond.DCActAct, Frequency: bond.Semiannual,
		BusinessDayRule: calendar.Following, Calendar: calendar.GB,
	}},
	"DBR": {"Bundesrepublik Deutschland", "EUR", bond.ConventionSet{
		DayCount: bond.DCActAct, Frequency: bond.Annual,
		BusinessDayRule: calendar.ModifiedFollowing, Calendar: calendar.TARGET,
	}},
	"BKO": {"Bundesrepublik Deutschland", "EUR", bond.ConventionSet{
		DayCount: bond.DCActAct, Frequency: bond.Annual,
		BusinessDayRule: calendar.ModifiedFollowing, Calendar: calendar.TARGET,
	}},
	"OBL": {"Bundesrepublik Deutschland", "EUR", bond.ConventionSet{
		DayCount: bond.DCActAct, Frequency: bond.Annual,
		BusinessDayRule: calendar.ModifiedFollowing, Calendar: calendar.TARGET,
	}},
	"OAT": {"French Republic", "EUR", bond.ConventionSet{
		DayCount: bond.DCActAct, Frequency: bond.Annual,
		BusinessDayRule: calendar.ModifiedFollowing, Calendar: calendar.TARGET,
	}},
	"FRTR": {"French Republic", "EUR", bond.ConventionSet{
		DayCount: bond.DCActAct, Frequency: bond.Annual,
		BusinessDayRule: calendar.ModifiedFollowing, Calendar: calendar.TARGET,
	}},
	"BTPS": {"Republic of Italy", "EUR", bond.ConventionSet{
		DayCount: bond.DCActAct, Frequency: bond.Semiannual,
		BusinessDayRule: calendar.ModifiedFollowing, Calendar: calendar.TARGET,
	}},
	"BTP": {"Republic of Italy", "EUR", bond.ConventionSet{
		DayCount: bond.DCActAct, Frequency: bond.Semiannual,
		BusinessDayRule: calendar.ModifiedFollowing, Calendar: calendar.TARGET,
	}},
	"JGB": {"Japanese Government Bond", "JPY", bond.ConventionSet{
		DayCount: bond.DCActAct, Frequency: bond.Semiannual,
		BusinessDayRule: calendar.Following, Calendar: calendar.JP,
	}},
}

// corporateProfile is the issuer-class default for anything that is not a
// known sovereign ticker: 30/360 semiannual, following, US calendar.
func corporateProfile(ticker string) issuerProfile {
	return issuerProfile{
		issuer:   ticker,
		currency: "USD",
		conventions: bond.ConventionSet{
			DayCount: bond.DC30360, Frequency: bond.Semiannual,
			BusinessDayRule: calendar.Following, Calendar: calendar.US,
		},
	}
}

// prefixProfiles maps ISIN country prefixes to convention defaults used when
// an identifier-shaped input missed both reference stores.
var prefixProfiles = map[string]issuerProfile{
	"US": {"US issuer", "USD", bond.ConventionSet{
		DayCount: bond.DC30360, Frequency: bond.Semiannual,
		BusinessDayRule: calendar.Following, Calendar: calendar.US,
	}},
	"CA": {"Canadian issuer", "CAD", bond.ConventionSet{
		DayCount: bond.DCActAct, Frequency: bond.Semiannual,
		BusinessDayRule: calendar.Following, Calendar: calendar.NONE,
	}},
	"GB": {"UK issuer", "GBP", bond.ConventionSet{
		DayCount: bond.DCActAct, Frequency: bond.Semiannual,
		BusinessDayRule: calendar.Following, Calendar: calendar.GB,
	}},
	"DE": {"German issuer", "EUR", bond.ConventionSet{
		DayCount: bond.DCActAct, Frequency: bond.Annual,
		BusinessDayRule: calendar.ModifiedFollowing, Calendar: calendar.TARGET,
	}},
	"FR": {"French issuer", "EUR", bond.ConventionSet{
		DayCount: bond.DCActAct, Frequency: bond.Annual,
		BusinessDayRule: calendar.ModifiedFollowing, Calendar: calendar.TARGET,
	}},
	"IT": {"Italian issuer", "EUR", bond.ConventionSet{
		DayCount: bond.DCActAct, Frequency: bond.Semiannual,
		BusinessDayRule: calendar.ModifiedFollowing, Calendar: calendar.TARGET,
	}},
	"ES": {"Spanish issuer", "EUR", bond.ConventionSet{
		DayCount: bond.DCActAct, Frequency: bond.Annual,
		BusinessDayRule: calendar.ModifiedFollowing, Calendar: calendar.TARGET,
	}},
	"NL": {"Dutch issuer", "EUR", bond.ConventionSet{
		DayCount: bond.DCActAct, Frequency: bond.Annual,
		BusinessDayRule: calendar.ModifiedFollowing, Calendar: calendar.TARGET,
	}},
	"XS": {"Eurobond issuer", "EUR", bond.ConventionSet{
		DayCount: bond.DC30E360, Frequency: bond.Annual,
		BusinessDayRule: calendar.ModifiedFollowing, Calendar: calendar.TARGET,
	}},
	"JP": {"Japanese issuer", "JPY", bond.ConventionSet{
		DayCount: bond.DCActAct, Frequency: bond.Semiannual,
		BusinessDayRule: calendar.Following, Calendar: calendar.JP,
	}},
}
