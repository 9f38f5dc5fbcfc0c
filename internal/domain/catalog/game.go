package catalog

import "math"

// SystemRequirements é o bloco de requisitos mínimos exibido na página do jogo.
// Todos os campos são texto livre preenchido pelos alunos.
type SystemRequirements struct {
	OS        string `json:"os"`
	Processor string `json:"processor"`
	Memory    string `json:"memory"`
	Graphics  string `json:"graphics"`
	Storage   string `json:"storage"`
}

// Review é uma avaliação deixada por um visitante na página do jogo.
// Depois de criada nunca é editada nem removida pelo mediador; apenas
// novas avaliações são adicionadas ao início da lista.
type Review struct {
	ID            string `json:"id"`
	Author        string `json:"author"`
	Content       string `json:"content"`
	IsRecommended bool   `json:"isRecommended"`
	Date          string `json:"date"`
}

// DevlogMedia descreve um anexo de devlog (imagem, gif, vídeo ou link externo).
type DevlogMedia struct {
	Type    string `json:"type"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Tipos aceitos em DevlogMedia.Type.
const (
	MediaImage = "image"
	MediaGIF   = "gif"
	MediaVideo = "video"
	MediaLink  = "link"
)

// Devlog é uma atualização de desenvolvimento publicada pela equipe do jogo.
// AuthorID referencia um Student, mas a referência pode estar pendurada:
// a resolução acontece na leitura, com um rótulo genérico como fallback.
type Devlog struct {
	ID       string        `json:"id"`
	Date     string        `json:"date"`
	AuthorID string        `json:"authorId"`
	Title    string        `json:"title"`
	Content  string        `json:"content"`
	Tags     []string      `json:"tags"`
	Media    []DevlogMedia `json:"media,omitempty"`
}

// DownloadLinks agrupa os links de download por plataforma. Campos vazios
// significam que a build não existe para aquela plataforma.
type DownloadLinks struct {
	Windows string `json:"windows,omitempty"`
	Android string `json:"android,omitempty"`
	Linux   string `json:"linux,omitempty"`
}

// Game é o registro principal do catálogo: um projeto de jogo enviado pelos
// alunos do curso. O ID é atribuído uma única vez na criação e nunca muda.
//
// FullDescription carrega HTML pré-renderizado e confiável (escrito pelos
// próprios alunos via formulário do admin), por isso não passa por sanitização.
// ReleaseDate é uma string formatada no padrão pt-BR ("15 Jun, 2024"), não um
// timestamp ordenável — ver dates.go para as implicações disso.
type Game struct {
	ID                 string             `json:"id"`
	Title              string             `json:"title"`
	ShortDescription   string             `json:"shortDescription"`
	FullDescription    string             `json:"fullDescription"`
	CoverImage         string             `json:"coverImage"`
	HeaderImage        string             `json:"headerImage"`
	BackgroundImage    string             `json:"backgroundImage,omitempty"`
	Screenshots        []string           `json:"screenshots"`
	VideoURL           string             `json:"videoUrl,omitempty"`
	WebBuildURL        string             `json:"webBuildUrl,omitempty"`
	PresentationURL    string             `json:"presentationUrl,omitempty"`
	DownloadLinks      DownloadLinks      `json:"downloadLinks"`
	TeamIDs            []string           `json:"teamIds"`
	Devlogs            []Devlog           `json:"devlogs"`
	ReleaseDate        string             `json:"releaseDate"`
	Tags               []string           `json:"tags"`
	ReviewSummary      string             `json:"reviewSummary"`
	ReviewsList        []Review           `json:"reviewsList"`
	SystemRequirements SystemRequirements `json:"systemRequirements"`
	CohortID           string             `json:"cohortId"`
}

// ReviewStats resume as avaliações de um jogo para exibição no catálogo.
type ReviewStats struct {
	Total           int `json:"total"`
	Positive        int `json:"positive"`
	PositivePercent int `json:"positivePercent"`
}

// Stats percorre a lista de avaliações e calcula o percentual de recomendações
// positivas, arredondado (round(100*positivas/total)). Sem avaliações o
// percentual é zero.
func (g Game) Stats() ReviewStats {
	stats := ReviewStats{Total: len(g.ReviewsList)}
	for _, r := range g.ReviewsList {
		if r.IsRecommended {
			stats.Positive++
		}
	}
	if stats.Total > 0 {
		stats.PositivePercent = int(math.Round(100 * float64(stats.Positive) / float64(stats.Total)))
	}
	return stats
}

// Clone devolve uma cópia profunda do jogo, para que snapshots entregues à
// camada de apresentação nunca compartilhem slices com o cache do mediador.
func (g Game) Clone() Game {
	out := g
	out.Screenshots = append([]string(nil), g.Screenshots...)
	out.TeamIDs = append([]string(nil), g.TeamIDs...)
	out.Tags = append([]string(nil), g.Tags...)
	out.ReviewsList = append([]Review(nil), g.ReviewsList...)
	out.Devlogs = make([]Devlog, len(g.Devlogs))
	for i, d := range g.Devlogs {
		out.Devlogs[i] = d.Clone()
	}
	return out
}

// Clone devolve uma cópia profunda do devlog.
func (d Devlog) Clone() Devlog {
	out := d
	out.Tags = append([]string(nil), d.Tags...)
	out.Media = append([]DevlogMedia(nil), d.Media...)
	return out
}

// CloneGames copia uma lista inteira de jogos.
func CloneGames(games []Game) []Game {
	out := make([]Game, len(games))
	for i, g := range games {
		out[i] = g.Clone()
	}
	return out
}
