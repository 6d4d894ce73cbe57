package slot

import (
	"bufio"
	"context"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
)

const migrationPath = "../../../../migrations/001_init.sql"

var (
	createTableRe  = regexp.MustCompile(`^CREATE TABLE IF NOT EXISTS (\w+) \($`)
	aliasColumnRe  = regexp.MustCompile(`\b([so])\.(\w+)\b`)
	assignColumnRe = regexp.MustCompile(`\b(\w+) = \$\d+`)
	setClauseRe    = regexp.MustCompile(`^UPDATE (\w+) SET (.+) WHERE (.+)$`)
)

// schemaColumns колонки таблиц из миграции
func schemaColumns(t *testing.T) map[string]map[string]bool {
	t.Helper()

	file, err := os.Open(migrationPath)
	require.NoError(t, err)
	defer file.Close()

	tables := make(map[string]map[string]bool)
	var current map[string]bool

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if m := createTableRe.FindStringSubmatch(line); m != nil {
			current = make(map[string]bool)
			tables[m[1]] = current
			continue
		}
		if current == nil {
			continue
		}
		if strings.HasPrefix(line, ")") {
			current = nil
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "--") {
			continue
		}
		switch strings.ToUpper(fields[0]) {
		case "CHECK", "PRIMARY", "UNIQUE", "CONSTRAINT", "FOREIGN":
			continue
		}
		current[fields[0]] = true
	}
	require.NoError(t, scanner.Err())

	return tables
}

// capturingRepository репозиторий, запоминающий весь выполненный SQL
func capturingRepository(t *testing.T) (*Repository, sqlmock.Sqlmock, *[]string) {
	t.Helper()

	var captured []string
	matcher := sqlmock.QueryMatcherFunc(func(_, actual string) error {
		captured = append(captured, actual)
		return nil
	})

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(dbmetrics.Wrap(db, nil)), mock, &captured
}

func TestSchema_SlotQueriesUseExistingColumns(t *testing.T) {
	tables := schemaColumns(t)
	require.Contains(t, tables, "slots")
	require.Contains(t, tables, "orders")

	repo, mock, captured := capturingRepository(t)
	mock.ExpectQuery("").WillReturnRows(sqlmock.NewRows(occupancyColumns))
	mock.ExpectQuery("").WillReturnRows(sqlmock.NewRows(occupancyColumns))
	mock.ExpectExec("").WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	date := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	_, err := repo.GetActiveByFacilityAndDate(ctx, "facility-1", date)
	require.NoError(t, err)
	_, err = repo.GetActiveAt(ctx, "facility-1", date, "06:30")
	require.NoError(t, err)
	_, err = repo.DeactivateByOrder(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, *captured, 3)

	aliases := map[string]string{"s": "slots", "o": "orders"}
	for _, query := range (*captured)[:2] {
		for _, m := range aliasColumnRe.FindAllStringSubmatch(query, -1) {
			table := aliases[m[1]]
			assert.True(t, tables[table][m[2]], "column %s.%s is missing in migration", table, m[2])
		}
	}

	update := setClauseRe.FindStringSubmatch((*captured)[2])
	require.NotNil(t, update, (*captured)[2])
	require.Contains(t, tables, update[1])
	for _, m := range assignColumnRe.FindAllStringSubmatch(update[2]+" "+update[3], -1) {
		assert.True(t, tables[update[1]][m[1]], "column %s.%s is missing in migration", update[1], m[1])
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
