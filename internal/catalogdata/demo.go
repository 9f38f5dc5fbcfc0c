// Package catalogdata guarda o conjunto de demonstração usado quando o backend
// remoto não está configurado, falha, ou ainda está vazio. É o mesmo catálogo
// exibido no site desde a primeira versão: três jogos e quatro alunos.
package catalogdata

import "github.com/andrensaraiva/PortalJogosSENAI/internal/domain/catalog"

// Cohorts devolve a lista fixa de turmas do curso.
func Cohorts() []catalog.Cohort {
	return catalog.CloneCohorts(cohorts)
}

// Students devolve uma cópia dos alunos de demonstração.
func Students() []catalog.Student {
	return catalog.CloneStudents(students)
}

// Games devolve uma cópia profunda dos jogos de demonstração.
func Games() []catalog.Game {
	return catalog.CloneGames(games)
}

var cohorts = []catalog.Cohort{
	{ID: "2024-1-A", Year: "2024", Name: "1º Semestre - Turma A"},
	{ID: "2024-1-B", Year: "2024", Name: "1º Semestre - Turma B"},
	{ID: "2023-2", Year: "2023", Name: "2º Semestre - Turma Única"},
	{ID: "2023-1", Year: "2023", Name: "1º Semestre - Turma Única"},
}

var students = []catalog.Student{
	{ID: "s1", Name: "João Silva", Role: "Programador", AvatarURL: "https://api.dicebear.com/7.x/avataaars/svg?seed=Felix", Username: "joao", Password: "123"},
	{ID: "s2", Name: "Maria Souza", Role: "Artista 2D", AvatarURL: "https://api.dicebear.com/7.x/avataaars/svg?seed=Aneka", Username: "maria", Password: "123"},
	{ID: "s3", Name: "Carlos Oliveira", Role: "Game Designer", AvatarURL: "https://api.dicebear.com/7.x/avataaars/svg?seed=Bob", Username: "carlos", Password: "123"},
	{ID: "s4", Name: "Ana Costa", Role: "Sound Designer", AvatarURL: "https://api.dicebear.com/7.x/avataaars/svg?seed=Milo", Username: "ana", Password: "123"},
}

var games = []catalog.Game{
	{
		ID:               "cyber-port-vix",
		Title:            "Cyber Port VIX",
		ShortDescription: "Explore uma versão futurista do Porto de Vitória, onde hackers tentam controlar os guindastes automatizados.",
		FullDescription: `
      <p>Em <strong>Cyber Port VIX</strong>, você assume o papel de um engenheiro de segurança cibernética encarregado de proteger a infraestrutura crítica do Porto de Vitória no ano de 2077.</p>
      <br/>
      <p>O jogo combina mecânicas de <em>Tower Defense</em> com puzzles de hacking em tempo real. Utilize drones, firewalls e contra-medidas digitais para impedir que o sindicato do crime "Black Tide" assuma o controle das operações logísticas.</p>
      <br/>
      <h3>Principais Características:</h3>
      <ul class="list-disc pl-5">
        <li>Mapa fielmente recriado da Baía de Vitória com estética Cyberpunk.</li>
        <li>15 níveis de dificuldade crescente.</li>
        <li>Trilha sonora original Synthwave produzida pelos alunos de Sound Design.</li>
      </ul>
    `,
		CoverImage:      "https://picsum.photos/300/400?random=1",
		HeaderImage:     "https://picsum.photos/600/300?random=2",
		BackgroundImage: "https://images.unsplash.com/photo-1555547432-84157a977119?q=80&w=2070&auto=format&fit=crop",
		Screenshots: []string{
			"https://picsum.photos/1280/720?random=3",
			"https://picsum.photos/1280/720?random=4",
			"https://picsum.photos/1280/720?random=5",
			"https://picsum.photos/1280/720?random=6",
		},
		VideoURL:        "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=0",
		WebBuildURL:     "mock-build",
		PresentationURL: "https://docs.google.com/presentation/d/e/2PACX-1vR6y2maA-3nC4QyR4sQJ7M3o3-sQ2wR3r4t5u6v7w8x9y0z1/embed?start=false&loop=false&delayms=3000",
		DownloadLinks:   catalog.DownloadLinks{Windows: "#", Android: "#"},
		TeamIDs:         []string{"s1", "s2"},
		Devlogs: []catalog.Devlog{
			{ID: "d1", Date: "10 Jun, 2024", AuthorID: "s1", Title: "Implementação de Física", Content: "Corrigimos a gravidade dos drones nos níveis noturnos.", Tags: []string{"Code", "Fix"}},
			{ID: "d2", Date: "05 Jun, 2024", AuthorID: "s2", Title: "Novos Sprites", Content: "Adicionados sprites para os contêineres neon.", Tags: []string{"Art"}},
		},
		ReleaseDate:   "15 Jun, 2024",
		Tags:          []string{"Estratégia", "Cyberpunk", "Tower Defense", "Indie"},
		ReviewSummary: "Extremamente Positivas",
		ReviewsList: []catalog.Review{
			{ID: "1", Author: "GameMaster2020", Content: "A ambientação no porto é incrível! Muito fiel a Vitória.", IsRecommended: true, Date: "16 Jun, 2024"},
			{ID: "2", Author: "CyberFan", Content: "Um pouco difícil no nível 5, mas adorei os visuais.", IsRecommended: true, Date: "18 Jun, 2024"},
		},
		SystemRequirements: catalog.SystemRequirements{
			OS:        "Windows 10/11",
			Processor: "Intel Core i5 ou equivalente",
			Memory:    "8 GB RAM",
			Graphics:  "NVIDIA GTX 1050 ou superior",
			Storage:   "2 GB de espaço disponível",
		},
		CohortID: "2024-1-A",
	},
	{
		ID:               "eco-convento",
		Title:            "Mistério no Convento",
		ShortDescription: "Uma aventura narrativa de terror 2D ambientada no Convento da Penha.",
		FullDescription: `
      <p>Uma excursão escolar dá errado quando um grupo de alunos fica trancado no histórico Convento da Penha após o pôr do sol. <strong>Mistério no Convento</strong> é um jogo de exploração e terror psicológico.</p>
      <p>Resolva enigmas baseados na história real do Espírito Santo para encontrar a saída, mas cuidado: as lendas locais ganharam vida.</p>
    `,
		CoverImage:      "https://picsum.photos/300/400?random=7",
		HeaderImage:     "https://picsum.photos/600/300?random=8",
		BackgroundImage: "https://images.unsplash.com/photo-1518770660439-4636190af475?q=80&w=2070&auto=format&fit=crop",
		Screenshots: []string{
			"https://picsum.photos/1280/720?random=9",
			"https://picsum.photos/1280/720?random=10",
		},
		WebBuildURL:   "mock-build",
		DownloadLinks: catalog.DownloadLinks{Windows: "#"},
		TeamIDs:       []string{"s3", "s4"},
		Devlogs: []catalog.Devlog{
			{ID: "d3", Date: "15 Nov, 2023", AuthorID: "s3", Title: "Ajuste de Iluminação", Content: "O shader de lanterna foi otimizado para rodar em PCs mais fracos.", Tags: []string{"Tech Art"}},
		},
		ReleaseDate:   "20 Nov, 2023",
		Tags:          []string{"Terror", "Puzzle", "Narrativo", "2D"},
		ReviewSummary: "Muito Positivas",
		ReviewsList: []catalog.Review{
			{ID: "3", Author: "ScaredPlayer", Content: "Tomei muitos sustos! A história é muito boa.", IsRecommended: true, Date: "21 Nov, 2023"},
		},
		SystemRequirements: catalog.SystemRequirements{
			OS:        "Windows 10",
			Processor: "Dual Core",
			Memory:    "4 GB RAM",
			Graphics:  "Integrada",
			Storage:   "500 MB",
		},
		CohortID: "2023-2",
	},
	{
		ID:               "moqueca-madness",
		Title:            "Moqueca Madness",
		ShortDescription: "Um jogo de culinária frenético cooperativo. É capixaba, o resto é peixada!",
		FullDescription:  "Prepare as melhores moquecas antes que o tempo acabe. Jogue com até 4 amigos localmente.",
		CoverImage:       "https://picsum.photos/300/400?random=11",
		HeaderImage:      "https://picsum.photos/600/300?random=12",
		Screenshots:      []string{"https://picsum.photos/1280/720?random=13"},
		DownloadLinks:    catalog.DownloadLinks{Windows: "#", Linux: "#"},
		TeamIDs:          []string{"s1", "s3"},
		Devlogs:          []catalog.Devlog{},
		ReleaseDate:      "05 Dez, 2023",
		Tags:             []string{"Casual", "Co-op", "Culinária"},
		ReviewSummary:    "Positivas",
		ReviewsList:      []catalog.Review{},
		SystemRequirements: catalog.SystemRequirements{
			OS:        "Qualquer",
			Processor: "Batata",
			Memory:    "2 GB",
			Graphics:  "Qualquer",
			Storage:   "200 MB",
		},
		CohortID: "2023-1",
	},
}
