package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

type TrackerContext string

// DBContextURL is the context key the API base URL is stored at.
const DBContextURL TrackerContext = "tracker-url"

// Connect opens the SQLite database and configures the connection pool.
func Connect(dsn string) error {
	config := &gorm.Config{
		Logger: newLogger(log.Logger),
	}

	// Migration with foreign keys disabled since sqlite does not support
	// ALTER COLUMN. Tables are copied to a temporary table, then the
	// table is dropped and recreated
	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Now, reconnect with foreign keys enabled
	dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)
	db, err = gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// A single connection prevents SQLITE_BUSY errors
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	err = registerCallbacks(db)
	if err != nil {
		return err
	}

	DB = db
	return nil
}

// ConnectPostgres opens a PostgreSQL database.
//
// The dsn is passed to pgx unchanged, both the URL and the key=value
// formats are supported.
func ConnectPostgres(dsn string) error {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger(log.Logger),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)

	err = registerCallbacks(db)
	if err != nil {
		return err
	}

	DB = db
	return nil
}

func registerCallbacks(db *gorm.DB) error {
	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "tracker:after_query", queryCallback},
		{db.Callback().Query().After("*"), "tracker:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "tracker:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "tracker:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "tracker:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "tracker:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "tracker:after_delete_general", generalCallback},
	}

	for _, c := range callbacks {
		err := c.processor.Register(c.name, c.fn)
		if err != nil {
			return fmt.Errorf("registering callback %s: %w", c.name, err)
		}
	}

	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		// and replace "_" with "[space]"
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")

		// Replace pluralized "ies" with "y"
		match := regexp.MustCompile("ies$")
		name = match.ReplaceAllString(name, "y")

		// Remove plural "s"
		name = strings.TrimRight(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// uniqueViolations maps unique indices to the errors returned when they are violated.
//
// sqlite reports the columns of the index, PostgreSQL the name of the index.
var uniqueViolations = []struct {
	sqlite   string
	postgres string
	err      error
}{
	{"accounts.owner_id, accounts.name", "idx_account_owner_name", ErrAccountNameNotUnique},
	{"payees.owner_id, payees.name", "idx_payee_owner_name", ErrPayeeNameNotUnique},
	{"category_groups.owner_id, category_groups.name", "idx_category_group_owner_name", ErrCategoryGroupNameNotUnique},
	{"budget_months.owner_id, budget_months.month", "idx_budget_month_owner_month", ErrBudgetMonthNotUnique},
	{"budget_allocations.owner_id, budget_allocations.budget_month_id, budget_allocations.category_id", "idx_allocation_owner_month_category", ErrAllocationNotUnique},
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	msg := db.Error.Error()
	for _, v := range uniqueViolations {
		if strings.Contains(msg, "UNIQUE constraint failed: "+v.sqlite) || strings.Contains(msg, fmt.Sprintf("unique constraint \"%s\"", v.postgres)) {
			db.Error = v.err
			return
		}
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	db.Error = general(db.Error)
}

// general replaces database errors with ErrGeneral after logging them.
func general(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError

	// "sql: database is closed" is hard-coded in the sql module
	if err.Error() == "sql: database is closed" || reflect.TypeOf(err) == reflect.TypeOf(&go_sqlite.Error{}) || errors.As(err, &pgErr) {
		log.Error().Msgf("%T: %v", err, err.Error())
		return ErrGeneral
	}

	return err
}

// Atomic runs fc in a database transaction.
//
// Errors beginning or committing the transaction do not pass the callbacks,
// they are translated here.
func Atomic(db *gorm.DB, fc func(tx *gorm.DB) error) error {
	return general(db.Transaction(fc))
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(Owner{}, Account{}, CategoryGroup{}, Category{}, BudgetMonth{}, BudgetAllocation{}, Payee{}, Transaction{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
