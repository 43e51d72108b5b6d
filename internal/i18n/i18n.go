package i18n

// The public site is bilingual English/Welsh. The language lives in the
// visitor's session and falls back to English for any missing Welsh key.

type Lang string

const (
	English Lang = "en"
	Welsh   Lang = "cy"
)

// Parse normalises a submitted language code, defaulting to English.
func Parse(value string) Lang {
	if Lang(value) == Welsh {
		return Welsh
	}
	return English
}

// T returns the translation for key in lang, falling back to English and
// finally to the key itself.
func T(lang Lang, key string) string {
	if lang == Welsh {
		if s, ok := welsh[key]; ok {
			return s
		}
	}
	if s, ok := english[key]; ok {
		return s
	}
	return key
}

var english = map[string]string{
	"nav.home":     "Home",
	"nav.players":  "Players",
	"nav.fixtures": "Fixtures",
	"nav.results":  "Results",
	"nav.history":  "Club History",
	"nav.club":     "The Club",
	"nav.contact":  "Contact",
	"nav.switch":   "Cymraeg",

	"home.welcome":     "Welcome to Porthmadog RFC",
	"home.latest":      "Latest Result",
	"home.no_results":  "No results recorded yet.",
	"home.next":        "Next Fixture",
	"home.no_fixtures": "No upcoming fixtures.",
	"home.squad":       "The Squad",
	"home.all_players": "View All Players",
	"home.all_results": "All Results",
	"home.full_list":   "Full Fixture List",

	"players.title":  "Players",
	"players.empty":  "No players in the squad yet.",
	"player.about":   "About",
	"player.pos":     "Position",
	"player.number":  "Squad Number",
	"player.age":     "Age",
	"player.back":    "All Players",
	"player.missing": "Player not found.",

	"fixtures.title":       "Fixtures",
	"fixtures.empty":       "No upcoming fixtures.",
	"fixtures.date":        "Date",
	"fixtures.opponent":    "Opponent",
	"fixtures.venue":       "Venue",
	"fixtures.competition": "Competition",
	"results.title":  "Results",
	"results.empty":  "No results yet this season",
	"results.win":    "Win",
	"results.loss":   "Loss",
	"results.draw":   "Draw",
	"results.motm":   "Man of the Match",

	"club.title":     "The Club",
	"club.founded":   "Founded",
	"club.coaches":   "Coaching Staff",
	"club.committee": "Committee",
	"history.title":  "Club History",
	"contact.title":  "Contact",
	"contact.email":  "Email",
	"contact.phone":  "Phone",
	"contact.ground": "Ground Address",

	"venue.home": "Home",
	"venue.away": "Away",

	"stats.season":      "Season",
	"stats.appearances": "Appearances",
	"stats.tries":       "Tries",
	"stats.points":      "Points",
	"stats.title":       "Season Stats",
	"stats.empty":       "No stats recorded for this season yet.",
}

var welsh = map[string]string{
	"nav.home":     "Hafan",
	"nav.players":  "Chwaraewyr",
	"nav.fixtures": "Gemau",
	"nav.results":  "Canlyniadau",
	"nav.history":  "Hanes y Clwb",
	"nav.club":     "Y Clwb",
	"nav.contact":  "Cysylltu",
	"nav.switch":   "English",

	"home.welcome":     "Croeso i Glwb Rygbi Porthmadog",
	"home.latest":      "Canlyniad Diweddaraf",
	"home.no_results":  "Dim canlyniadau eto.",
	"home.next":        "Gêm Nesaf",
	"home.no_fixtures": "Dim gemau ar y gweill.",
	"home.squad":       "Y Garfan",
	"home.all_players": "Gweld Pob Chwaraewr",
	"home.all_results": "Pob Canlyniad",
	"home.full_list":   "Rhestr Lawn o Gemau",

	"players.title":  "Chwaraewyr",
	"players.empty":  "Dim chwaraewyr yn y garfan eto.",
	"player.about":   "Amdano",
	"player.pos":     "Safle",
	"player.number":  "Rhif Carfan",
	"player.age":     "Oed",
	"player.back":    "Pob Chwaraewr",
	"player.missing": "Heb ganfod y chwaraewr.",

	"fixtures.title":       "Gemau",
	"fixtures.empty":       "Dim gemau ar y gweill.",
	"fixtures.date":        "Dyddiad",
	"fixtures.opponent":    "Gwrthwynebwyr",
	"fixtures.venue":       "Lleoliad",
	"fixtures.competition": "Cystadleuaeth",
	"results.title":  "Canlyniadau",
	"results.empty":  "Dim canlyniadau eto y tymor hwn",
	"results.win":    "Buddugoliaeth",
	"results.loss":   "Colled",
	"results.draw":   "Gêm gyfartal",
	"results.motm":   "Seren y Gêm",

	"club.title":     "Y Clwb",
	"club.founded":   "Sefydlwyd",
	"club.coaches":   "Staff Hyfforddi",
	"club.committee": "Pwyllgor",
	"history.title":  "Hanes y Clwb",
	"contact.title":  "Cysylltu",
	"contact.email":  "E-bost",
	"contact.phone":  "Ffôn",
	"contact.ground": "Cyfeiriad y Cae",

	"venue.home": "Cartref",
	"venue.away": "Oddi cartref",

	"stats.season":      "Tymor",
	"stats.appearances": "Ymddangosiadau",
	"stats.tries":       "Ceisiau",
	"stats.points":      "Pwyntiau",
	"stats.title":       "Ystadegau'r Tymor",
	"stats.empty":       "Dim ystadegau wedi'u cofnodi ar gyfer y tymor hwn eto.",
}
