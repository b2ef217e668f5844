package output

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/songmap/pkg/adapters"
	"github.com/agentstation/songmap/pkg/songs"
)

// SongRecord is the serialized shape of a song in json and yaml output.
type SongRecord struct {
	Name        string    `json:"name" yaml:"name"`
	Artist      string    `json:"artist,omitempty" yaml:"artist,omitempty"`
	Genre       string    `json:"genre,omitempty" yaml:"genre,omitempty"`
	Year        int       `json:"year" yaml:"year"`
	Rating      int       `json:"rating" yaml:"rating"`
	Stars       int       `json:"stars" yaml:"stars"`
	BPM         int       `json:"bpm,omitempty" yaml:"bpm,omitempty"`
	PlayedCount int       `json:"played_count" yaml:"played_count"`
	DateAdded   time.Time `json:"date_added" yaml:"date_added"`
	Location    string    `json:"location" yaml:"location"`
}

// SongRecords converts songs for structured output.
func SongRecords(list []*songs.Song) []SongRecord {
	out := make([]SongRecord, 0, len(list))
	for _, s := range list {
		out = append(out, SongRecord{
			Name:        s.Name,
			Artist:      s.Artist,
			Genre:       s.Genre,
			Year:        s.Year,
			Rating:      s.Rating,
			Stars:       s.Stars(),
			BPM:         s.BPM,
			PlayedCount: s.PlayedCount,
			DateAdded:   s.DateAdded(),
			Location:    s.Location,
		})
	}
	return out
}

// SongsToTableData renders songs as rows. Wide output adds the counters
// and the file location.
func SongsToTableData(list []*songs.Song, wide bool) Data {
	headers := []string{"Artist", "Name", "Year", "Rating", "Genre"}
	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignLeft}
	if wide {
		headers = append(headers, "Played", "BPM", "Added", "Location")
		align = append(align, AlignRight, AlignRight, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(list))
	for _, s := range list {
		row := []string{s.Artist, s.Name, strconv.Itoa(s.Year), s.RatingInStars(), s.Genre}
		if wide {
			row = append(row,
				strconv.Itoa(s.PlayedCount),
				strconv.Itoa(s.BPM),
				songs.DateOf(s.DateAdded()).String(),
				s.Location)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// DescriptorsToTableData renders the adapter catalog, one row per adapter.
func DescriptorsToTableData(list []adapters.Descriptor) Data {
	rows := make([][]string, 0, len(list))
	for _, d := range list {
		opts := make([]string, 0, len(d.Options))
		for _, o := range d.Options {
			if o.Default != nil && o.Default != "" {
				opts = append(opts, fmt.Sprintf("%s=%v", o.Name, o.Default))
			} else {
				opts = append(opts, o.Name)
			}
		}
		rows = append(rows, []string{d.Name, string(d.Type), d.Doc, strings.Join(opts, ", ")})
	}
	return Data{
		Headers: []string{"Name", "Type", "Description", "Options"},
		Rows:    rows,
	}
}
