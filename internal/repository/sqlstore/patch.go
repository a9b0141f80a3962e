package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"murim-academy/internal/domain"
	"murim-academy/internal/repository"
)

// table names a patchable table and the columns callers may set through it.
type table struct {
	name      string
	updatable map[string]struct{}
}

func newTable(name string, updatable ...string) table {
	cols := make(map[string]struct{}, len(updatable))
	for _, c := range updatable {
		cols[c] = struct{}{}
	}
	return table{name: name, updatable: cols}
}

var (
	usersTable        = newTable("users", "nome_completo", "email", "telefone", "senha", "role")
	messagesTable     = newTable("mensagens", "nome_completo", "email", "telefone", "assunto", "mensagem", "lida")
	productsTable     = newTable("produtos", "nome", "descricao", "preco", "imagem", "categoria")
	schedulesTable    = newTable("horarios", "dia_semana", "hora_inicio", "hora_fim", "modalidade", "nivel")
	trainersTable     = newTable("trainers", "nome", "especialidade", "experience", "descricao", "availability", "imagem")
	appointmentsTable = newTable("agendamentos", "user_id", "trainer_id", "data", "hora_inicio", "hora_fim", "status")
)

// applyUpdate runs a single UPDATE setting exactly the columns in patch on row id.
// An empty patch is a no-op reported as false. Column names come from the table's
// allow-list only; values are always bound.
func applyUpdate(ctx context.Context, db *sqlx.DB, t table, id int64, patch repository.Patch) (bool, error) {
	if len(patch) == 0 {
		return false, nil
	}

	columns := make([]string, 0, len(patch))
	for column, value := range patch {
		if _, ok := t.updatable[column]; !ok {
			return false, domain.NewValidationError(column, "unknown field")
		}
		if !isScalar(value) {
			return false, domain.NewValidationError(column, "must be a scalar value")
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	assignments := make([]string, len(columns))
	args := make([]any, 0, len(columns)+1)
	for i, column := range columns {
		assignments[i] = column + " = ?"
		args = append(args, patch[column])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", t.name, strings.Join(assignments, ", "))
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		if isUniqueViolation(err) {
			return false, fmt.Errorf("update %s: %w", t.name, domain.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return false, domain.NewValidationError("", "referenced record does not exist")
		}
		return false, fmt.Errorf("update %s: %w", t.name, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update %s rows affected: %w", t.name, err)
	}
	return affected > 0, nil
}

// deleteRow removes row id from t and reports whether anything was deleted.
func deleteRow(ctx context.Context, db *sqlx.DB, t table, id int64) (bool, error) {
	res, err := db.ExecContext(ctx, db.Rebind("DELETE FROM "+t.name+" WHERE id = ?"), id)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", t.name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete %s rows affected: %w", t.name, err)
	}
	return affected > 0, nil
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool, json.Number, time.Time,
		int, int32, int64, uint, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}
