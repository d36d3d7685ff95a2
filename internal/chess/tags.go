package chess

// TagName represents the index of a PGN tag the ingest layer reads.
type TagName int

const (
	BlackTag TagName = iota
	BlackEloTag
	BlackTitleTag
	ECOTag
	EventTag
	FENTag
	OpeningTag
	ResultTag
	SiteTag
	TerminationTag
	TimeControlTag
	UTCDateTag
	UTCTimeTag
	WhiteTag
	WhiteEloTag
	WhiteTitleTag
	NumberOfTags // Sentinel, must be last
)

// TagNameStrings maps tag indices to their string representations.
var TagNameStrings = map[TagName]string{
	BlackTag:       "Black",
	BlackEloTag:    "BlackElo",
	BlackTitleTag:  "BlackTitle",
	ECOTag:         "ECO",
	EventTag:       "Event",
	FENTag:         "FEN",
	OpeningTag:     "Opening",
	ResultTag:      "Result",
	SiteTag:        "Site",
	TerminationTag: "Termination",
	TimeControlTag: "TimeControl",
	UTCDateTag:     "UTCDate",
	UTCTimeTag:     "UTCTime",
	WhiteTag:       "White",
	WhiteEloTag:    "WhiteElo",
	WhiteTitleTag:  "WhiteTitle",
}

// String returns the PGN spelling of the tag.
func (t TagName) String() string {
	return TagNameStrings[t]
}

// Recorded result strings.
const (
	WhiteWins = "1-0"
	BlackWins = "0-1"
	Draw      = "1/2-1/2"
)

// Termination labels as written by the source archive.
const (
	TerminationNormal          = "Normal"
	TerminationTimeForfeit     = "Time forfeit"
	TerminationInsufficient    = "Insufficient material"
	TerminationAbandoned       = "Abandoned"
	TerminationRulesInfraction = "Rules infraction"
	TerminationUnterminated    = "Unterminated"
)

// TitleBot is the title the archive assigns to engine accounts.
const TitleBot = "BOT"
