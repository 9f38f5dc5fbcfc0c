package remote

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/andrensaraiva/PortalJogosSENAI/internal/domain/catalog"

	"gorm.io/datatypes"
)

// As coleções remotas são tabelas com uma linha por documento. Os campos
// aninhados do jogo (screenshots, equipe, devlogs, avaliações etc.) ficam em
// colunas JSON, preservando o formato de documento do catálogo. CreatedAt e
// UpdatedAt são atribuídos pelo servidor e não aparecem no modelo de domínio.

type gameRow struct {
	ID                 string `gorm:"primaryKey;size:64"`
	Title              string `gorm:"size:255"`
	ShortDescription   string `gorm:"type:text"`
	FullDescription    string `gorm:"type:text"`
	CoverImage         string `gorm:"size:512"`
	HeaderImage        string `gorm:"size:512"`
	BackgroundImage    string `gorm:"size:512"`
	Screenshots        datatypes.JSON
	VideoURL           string `gorm:"size:512"`
	WebBuildURL        string `gorm:"size:512"`
	PresentationURL    string `gorm:"size:512"`
	DownloadLinks      datatypes.JSON
	TeamIDs            datatypes.JSON `gorm:"column:team_ids"`
	Devlogs            datatypes.JSON
	ReleaseDate        string `gorm:"size:64;index"`
	Tags               datatypes.JSON
	ReviewSummary      string `gorm:"size:128"`
	ReviewsList        datatypes.JSON
	SystemRequirements datatypes.JSON
	CohortID           string `gorm:"size:64;index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (gameRow) TableName() string { return "games" }

type studentRow struct {
	ID        string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"size:255"`
	Role      string `gorm:"size:128"`
	AvatarURL string `gorm:"size:512"`
	Username  string `gorm:"size:64;index"`
	Password  string `gorm:"size:128"`
	CohortID  string `gorm:"size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (studentRow) TableName() string { return "students" }

type cohortRow struct {
	ID          string `gorm:"primaryKey;size:64"`
	Year        string `gorm:"size:16"`
	Name        string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (cohortRow) TableName() string { return "cohorts" }

// toGameRow serializa os campos aninhados do jogo para as colunas JSON.
func toGameRow(g catalog.Game) (gameRow, error) {
	row := gameRow{
		ID:               g.ID,
		Title:            g.Title,
		ShortDescription: g.ShortDescription,
		FullDescription:  g.FullDescription,
		CoverImage:       g.CoverImage,
		HeaderImage:      g.HeaderImage,
		BackgroundImage:  g.BackgroundImage,
		VideoURL:         g.VideoURL,
		WebBuildURL:      g.WebBuildURL,
		PresentationURL:  g.PresentationURL,
		ReleaseDate:      g.ReleaseDate,
		ReviewSummary:    g.ReviewSummary,
		CohortID:         g.CohortID,
	}

	fields := []struct {
		name  string
		value any
		dst   *datatypes.JSON
	}{
		{"screenshots", emptyIfNil(g.Screenshots), &row.Screenshots},
		{"downloadLinks", g.DownloadLinks, &row.DownloadLinks},
		{"teamIds", emptyIfNil(g.TeamIDs), &row.TeamIDs},
		{"devlogs", emptyDevlogsIfNil(g.Devlogs), &row.Devlogs},
		{"tags", emptyIfNil(g.Tags), &row.Tags},
		{"reviewsList", emptyReviewsIfNil(g.ReviewsList), &row.ReviewsList},
		{"systemRequirements", g.SystemRequirements, &row.SystemRequirements},
	}
	for _, f := range fields {
		raw, err := json.Marshal(f.value)
		if err != nil {
			return gameRow{}, fmt.Errorf("serializar %s: %w", f.name, err)
		}
		*f.dst = datatypes.JSON(raw)
	}

	return row, nil
}

// toGame reconstrói o documento de domínio a partir da linha.
func toGame(row gameRow) (catalog.Game, error) {
	g := catalog.Game{
		ID:               row.ID,
		Title:            row.Title,
		ShortDescription: row.ShortDescription,
		FullDescription:  row.FullDescription,
		CoverImage:       row.CoverImage,
		HeaderImage:      row.HeaderImage,
		BackgroundImage:  row.BackgroundImage,
		VideoURL:         row.VideoURL,
		WebBuildURL:      row.WebBuildURL,
		PresentationURL:  row.PresentationURL,
		ReleaseDate:      row.ReleaseDate,
		ReviewSummary:    row.ReviewSummary,
		CohortID:         row.CohortID,
	}

	fields := []struct {
		name string
		raw  datatypes.JSON
		dst  any
	}{
		{"screenshots", row.Screenshots, &g.Screenshots},
		{"downloadLinks", row.DownloadLinks, &g.DownloadLinks},
		{"teamIds", row.TeamIDs, &g.TeamIDs},
		{"devlogs", row.Devlogs, &g.Devlogs},
		{"tags", row.Tags, &g.Tags},
		{"reviewsList", row.ReviewsList, &g.ReviewsList},
		{"systemRequirements", row.SystemRequirements, &g.SystemRequirements},
	}
	for _, f := range fields {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return catalog.Game{}, fmt.Errorf("ler %s do jogo %s: %w", f.name, row.ID, err)
		}
	}
	if g.Devlogs == nil {
		g.Devlogs = []catalog.Devlog{}
	}
	if g.ReviewsList == nil {
		g.ReviewsList = []catalog.Review{}
	}

	return g, nil
}

func toStudentRow(s catalog.Student) studentRow {
	return studentRow{
		ID:        s.ID,
		Name:      s.Name,
		Role:      s.Role,
		AvatarURL: s.AvatarURL,
		Username:  s.Username,
		Password:  s.Password,
		CohortID:  s.CohortID,
	}
}

func toStudent(row studentRow) catalog.Student {
	return catalog.Student{
		ID:        row.ID,
		Name:      row.Name,
		Role:      row.Role,
		AvatarURL: row.AvatarURL,
		Username:  row.Username,
		Password:  row.Password,
		CohortID:  row.CohortID,
	}
}

func toCohortRow(c catalog.Cohort) cohortRow {
	return cohortRow{ID: c.ID, Year: c.Year, Name: c.Name, Description: c.Description}
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func emptyDevlogsIfNil(in []catalog.Devlog) []catalog.Devlog {
	if in == nil {
		return []catalog.Devlog{}
	}
	return in
}

func emptyReviewsIfNil(in []catalog.Review) []catalog.Review {
	if in == nil {
		return []catalog.Review{}
	}
	return in
}
