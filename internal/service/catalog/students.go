package catalog

import (
	"context"
	"errors"
	"unicode/utf8"

	domain "github.com/andrensaraiva/PortalJogosSENAI/internal/domain/catalog"
	"github.com/andrensaraiva/PortalJogosSENAI/internal/store"
)

const minPasswordLength = 3

// RegisterStudent cria um aluno, seja pelo admin, seja pelo autocadastro do
// formulário de submissão. Devolve o id gerado.
func (s *Service) RegisterStudent(ctx context.Context, student domain.Student) (string, error) {
	log := s.scope("register_student").With("username", student.Username)

	id, err := s.store.CreateStudent(ctx, student)
	if err != nil {
		log.Errorw("falha ao registrar aluno", "error", err)
		s.setLastError(ErrRegisterStudent.Error())
		s.recordOperation("register_student", false)
		return "", ErrRegisterStudent
	}

	if s.remote {
		s.Refresh(ctx)
	} else {
		s.patchStudentsFromStore(ctx, log)
	}

	log.Infow("aluno registrado", "student_id", id)
	s.recordOperation("register_student", true)
	return id, nil
}

// UpdateStudent substitui o registro inteiro do aluno, mantendo o id.
func (s *Service) UpdateStudent(ctx context.Context, student domain.Student) error {
	log := s.scope("update_student").With("student_id", student.ID)

	if err := s.store.UpdateStudent(ctx, student); err != nil {
		log.Errorw("falha ao atualizar aluno", "error", err)
		s.setLastError(ErrUpdateStudent.Error())
		s.recordOperation("update_student", false)
		return ErrUpdateStudent
	}

	if s.remote {
		s.Refresh(ctx)
	} else {
		s.patchStudentsFromStore(ctx, log)
	}

	s.recordOperation("update_student", true)
	return nil
}

// DeleteStudent remove o aluno pelo id.
func (s *Service) DeleteStudent(ctx context.Context, studentID string) error {
	log := s.scope("delete_student").With("student_id", studentID)

	if err := s.store.DeleteStudent(ctx, studentID); err != nil {
		log.Errorw("falha ao deletar aluno", "error", err)
		s.setLastError(ErrDeleteStudent.Error())
		s.recordOperation("delete_student", false)
		return ErrDeleteStudent
	}

	if s.remote {
		s.Refresh(ctx)
	} else {
		s.patchStudentsFromStore(ctx, log)
	}

	s.recordOperation("delete_student", true)
	return nil
}

// ChangeStudentPassword troca a senha do aluno validando a senha atual. É a
// única operação com erro estruturado por motivo: o formulário precisa dizer
// ao aluno exatamente o que recusou. As comparações são de texto puro, fiéis
// ao cadastro herdado das turmas, e não constituem controle de segurança.
func (s *Service) ChangeStudentPassword(ctx context.Context, studentID, currentPassword, newPassword string) error {
	log := s.scope("change_student_password").With("student_id", studentID)

	student := s.StudentByID(studentID)
	if student == nil {
		return ErrStudentNotFound
	}

	if student.Password != currentPassword {
		return ErrWrongPassword
	}

	if utf8.RuneCountInString(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	if err := s.store.UpdateStudentPassword(ctx, studentID, newPassword); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrStudentNotFound
		}
		log.Errorw("falha ao alterar senha", "error", err)
		return ErrChangePassword
	}

	if s.remote {
		s.Refresh(ctx)
	} else {
		s.patchStudentsFromStore(ctx, log)
	}

	s.recordOperation("change_student_password", true)
	return nil
}

// LoginStudent procura um aluno com usuário e senha exatamente iguais aos
// informados. Devolve nil quando não há correspondência. É uma conveniência
// de interface (libera o formulário de submissão), não uma barreira de
// segurança.
func (s *Service) LoginStudent(username, password string) *domain.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.students {
		if s.students[i].Username == username && s.students[i].Password == password {
			student := s.students[i]
			return &student
		}
	}
	return nil
}

// StudentByID busca um aluno no cache. Devolve nil quando o id não resolve.
func (s *Service) StudentByID(id string) *domain.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.students {
		if s.students[i].ID == id {
			student := s.students[i]
			return &student
		}
	}
	return nil
}
