package catalog

// Student é um aluno do curso, membro de uma ou mais equipes de jogo.
//
// Username e Password formam a credencial de acesso ao formulário de envio de
// projetos. A senha é armazenada e comparada em texto puro de propósito: não é
// uma fronteira de segurança, é só uma conveniência de interface, e o painel do
// admin exibe as senhas em uma tabela. A unicidade do username é esperada mas
// não imposta pelo sistema.
type Student struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	CohortID  string `json:"cohortId,omitempty"`
}

// Cohort é uma turma do curso. Lista estática de referência: nunca é criada,
// alterada ou removida pelas operações do mediador.
type Cohort struct {
	ID          string `json:"id"`
	Year        string `json:"year"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CloneStudents copia uma lista de alunos.
func CloneStudents(students []Student) []Student {
	out := make([]Student, len(students))
	copy(out, students)
	return out
}

// CloneCohorts copia uma lista de turmas.
func CloneCohorts(cohorts []Cohort) []Cohort {
	out := make([]Cohort, len(cohorts))
	copy(out, cohorts)
	return out
}
