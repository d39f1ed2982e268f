package library

import (
	"fmt"
	"sort"
	"strings"

	"openrecorder/internal/services"
)

// Preset names a relative modification-time window for analytics.
type Preset string

const (
	Preset7d  Preset = "7d"
	Preset30d Preset = "30d"
	Preset90d Preset = "90d"
	PresetAll Preset = "all"
)

const daySeconds = 86400

// ParsePreset validates a preset string.
func ParsePreset(value string) (Preset, error) {
	switch Preset(strings.TrimSpace(value)) {
	case Preset7d:
		return Preset7d, nil
	case Preset30d:
		return Preset30d, nil
	case Preset90d:
		return Preset90d, nil
	case PresetAll:
		return PresetAll, nil
	default:
		return "", services.Wrap(services.ErrInvalidPreset, "library", "parse preset", fmt.Sprintf("%q (expected 7d, 30d, 90d, or all)", value), nil)
	}
}

// MinMTime returns the preset's inclusive mtime cutoff relative to now.
// ok=false means no cutoff.
func (p Preset) MinMTime(now int64) (int64, bool) {
	switch p {
	case Preset7d:
		return now - 7*daySeconds, true
	case Preset30d:
		return now - 30*daySeconds, true
	case Preset90d:
		return now - 90*daySeconds, true
	default:
		return 0, false
	}
}

// MetaItem is the caller-supplied transcription metadata for one source
// path.
type MetaItem struct {
	Language             string   `json:"language"`
	TranscriptionSeconds *float64 `json:"transcriptionSeconds"`
}

// KPIs are the headline library counters.
type KPIs struct {
	TotalRecordings          uint64  `json:"totalRecordings"`
	TotalRecordingSeconds    float64 `json:"totalRecordingSeconds"`
	TranscribedRecordings    uint64  `json:"transcribedRecordings"`
	TranscribedSeconds       float64 `json:"transcribedSeconds"`
	TranscriptionCoveragePct float64 `json:"transcriptionCoveragePct"`
}

// SeriesPoint is one UTC day of recording activity.
type SeriesPoint struct {
	DayStartUnix       int64   `json:"dayStartUnix"`
	RecordingSeconds   float64 `json:"recordingSeconds"`
	TranscribedSeconds float64 `json:"transcribedSeconds"`
	Recordings         uint64  `json:"recordings"`
}

// Bucket is one duration histogram bucket.
type Bucket struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Count   uint64  `json:"count"`
	Seconds float64 `json:"seconds"`
}

// LanguageItem is one row of the language distribution, computed over
// transcribed items only.
type LanguageItem struct {
	Language           string  `json:"language"`
	Count              uint64  `json:"count"`
	TranscribedSeconds float64 `json:"transcribedSeconds"`
}

// FileTypeItem is one row of the file-type distribution.
type FileTypeItem struct {
	Ext     string  `json:"ext"`
	Count   uint64  `json:"count"`
	Seconds float64 `json:"seconds"`
}

// Row is one entry of the recent-recordings table.
type Row struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Path            string   `json:"path"`
	MTimeUnix       int64    `json:"mtimeUnix"`
	DurationSeconds *float64 `json:"durationSeconds"`
	HasTranscript   bool     `json:"hasTranscript"`
	Language        string   `json:"language"`
}

// Result is the full analytics payload for one aggregation pass.
type Result struct {
	Preset               Preset         `json:"preset"`
	KPIs                 KPIs           `json:"kpis"`
	Series               []SeriesPoint  `json:"series"`
	DurationBuckets      []Bucket       `json:"durationBuckets"`
	LanguageDistribution []LanguageItem `json:"languageDistribution"`
	FileTypeDistribution []FileTypeItem `json:"fileTypeDistribution"`
	Recent               []Row          `json:"recent"`
}

const recentLimit = 10

// durationBuckets returns the four fixed histogram buckets. Boundaries are
// inclusive-low: 120s lands in 2-5m.
func durationBuckets() []Bucket {
	return []Bucket{
		{ID: "0-2m", Label: "0-2m"},
		{ID: "2-5m", Label: "2-5m"},
		{ID: "5-15m", Label: "5-15m"},
		{ID: "15m+", Label: "15m+"},
	}
}

func bucketIndex(seconds float64) int {
	switch {
	case seconds < 120:
		return 0
	case seconds < 300:
		return 1
	case seconds < 900:
		return 2
	default:
		return 3
	}
}

// Aggregate folds scanned items into the analytics payload. It is a pure
// function of its inputs: identical items, metadata, and now produce
// identical output, including ordering. hasTranscript must be a read-only
// check.
func Aggregate(items []Item, preset Preset, now int64, metaByPath map[string]MetaItem, hasTranscript func(path string) bool) Result {
	minMTime, bounded := preset.MinMTime(now)

	var kpis KPIs
	seriesByDay := make(map[int64]*SeriesPoint)
	buckets := durationBuckets()
	fileTypes := make(map[string]*FileTypeItem)
	languages := make(map[string]*LanguageItem)
	var recent []Row

	for _, item := range items {
		if bounded && item.MTime < minMTime {
			continue
		}

		var duration float64
		if item.Duration != nil {
			duration = *item.Duration
		}
		transcribed := hasTranscript(item.Path)

		meta, hasMeta := metaByPath[item.Path]

		language := "unknown"
		if transcribed && hasMeta && strings.TrimSpace(meta.Language) != "" {
			language = meta.Language
		}
		language = strings.ToLower(language)

		var transcribedSeconds float64
		if transcribed {
			switch {
			case hasMeta && meta.TranscriptionSeconds != nil:
				transcribedSeconds = *meta.TranscriptionSeconds
			case item.Duration != nil:
				transcribedSeconds = duration
			}
		}

		kpis.TotalRecordings++
		kpis.TotalRecordingSeconds += duration
		if transcribed {
			kpis.TranscribedRecordings++
			kpis.TranscribedSeconds += transcribedSeconds
		}

		day := item.MTime - mod(item.MTime, daySeconds)
		point, ok := seriesByDay[day]
		if !ok {
			point = &SeriesPoint{DayStartUnix: day}
			seriesByDay[day] = point
		}
		point.RecordingSeconds += duration
		point.TranscribedSeconds += transcribedSeconds
		point.Recordings++

		bucket := &buckets[bucketIndex(duration)]
		bucket.Count++
		bucket.Seconds += duration

		ext := strings.ToLower(strings.TrimPrefix(extOf(item.Path), "."))
		if ext == "" {
			ext = "unknown"
		}
		fileType, ok := fileTypes[ext]
		if !ok {
			fileType = &FileTypeItem{Ext: ext}
			fileTypes[ext] = fileType
		}
		fileType.Count++
		fileType.Seconds += duration

		if transcribed {
			lang, ok := languages[language]
			if !ok {
				lang = &LanguageItem{Language: language}
				languages[language] = lang
			}
			lang.Count++
			lang.TranscribedSeconds += transcribedSeconds
		}

		recent = append(recent, Row{
			ID:              item.ID,
			Name:            item.Name,
			Path:            item.Path,
			MTimeUnix:       item.MTime,
			DurationSeconds: item.Duration,
			HasTranscript:   transcribed,
			Language:        language,
		})
	}

	if kpis.TotalRecordingSeconds > 0 {
		kpis.TranscriptionCoveragePct = kpis.TranscribedSeconds / kpis.TotalRecordingSeconds * 100
	}

	series := make([]SeriesPoint, 0, len(seriesByDay))
	for _, point := range seriesByDay {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].DayStartUnix < series[j].DayStartUnix
	})

	fileTypeDist := make([]FileTypeItem, 0, len(fileTypes))
	for _, fileType := range fileTypes {
		fileTypeDist = append(fileTypeDist, *fileType)
	}
	sort.Slice(fileTypeDist, func(i, j int) bool {
		if fileTypeDist[i].Seconds != fileTypeDist[j].Seconds {
			return fileTypeDist[i].Seconds > fileTypeDist[j].Seconds
		}
		return fileTypeDist[i].Ext < fileTypeDist[j].Ext
	})

	languageDist := make([]LanguageItem, 0, len(languages))
	for _, lang := range languages {
		languageDist = append(languageDist, *lang)
	}
	sort.Slice(languageDist, func(i, j int) bool {
		if languageDist[i].TranscribedSeconds != languageDist[j].TranscribedSeconds {
			return languageDist[i].TranscribedSeconds > languageDist[j].TranscribedSeconds
		}
		return languageDist[i].Language < languageDist[j].Language
	})

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].MTimeUnix > recent[j].MTimeUnix
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	if recent == nil {
		recent = []Row{}
	}

	return Result{
		Preset:               preset,
		KPIs:                 kpis,
		Series:               series,
		DurationBuckets:      buckets,
		LanguageDistribution: languageDist,
		FileTypeDistribution: fileTypeDist,
		Recent:               recent,
	}
}

// mod is a floored modulo so pre-1970 mtimes still bucket onto UTC day
// boundaries.
func mod(value, base int64) int64 {
	m := value % base
	if m < 0 {
		m += base
	}
	return m
}

func extOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		switch path[i] {
		case '.':
			return path[i:]
		case '/', '\\':
			return ""
		}
	}
	return ""
}
