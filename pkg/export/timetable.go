package export

// Row is one exported timetable period.
type Row struct {
	Day       string `csv:"Day"`
	Period    int    `csv:"Period"`
	StartTime string `csv:"Start"`
	EndTime   string `csv:"End"`
	Subject   string `csv:"Subject"`
	Code      string `csv:"Code"`
	Faculty   string `csv:"Faculty"`
	Class     string `csv:"Class"`
	Room      string `csv:"Room"`
	Lab       bool   `csv:"Lab"`
}

// Sheet is a titled set of rows describing one timetable.
type Sheet struct {
	Title string
	Rows  []Row
}
