package services

import (
	"context"
	"testing"

	"busbooking/internal/auth"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

var testSecret = []byte("unit-test-secret")

func newAuthService(t *testing.T) (AuthService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	return AuthService{DB: db, Secret: testSecret}, mock, func() { db.Close() }
}

func TestRegisterSuccess(t *testing.T) {
	svc, mock, done := newAuthService(t)
	defer done()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO users").
		WithArgs("Ann", "ann@example.com", sqlmock.AnyArg(), "0812345678", "Customer").
		WillReturnResult(sqlmock.NewResult(12, 1))

	u, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ann", Email: "ann@example.com", Password: "s3cret", Phone: "0812345678",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if u.ID != 12 {
		t.Fatalf("user id: got %d want 12", u.ID)
	}
	if u.Role != models.RoleCustomer {
		t.Fatalf("role: got %s want Customer", u.Role)
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash must not leave the service")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, mock, done := newAuthService(t)
	defer done()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ann", Email: "ann@example.com", Password: "s3cret", Phone: "0812345678",
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// The insert must never have been attempted.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc, mock, done := newAuthService(t)
	defer done()

	_, err := svc.Register(context.Background(), RegisterInput{Email: "ann@example.com"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database activity: %v", err)
	}
}

func userRow(t *testing.T, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	return sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "phone", "role"}).
		AddRow(12, "Ann", "ann@example.com", string(hash), "0812345678", "Customer")
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, mock, done := newAuthService(t)
	defer done()

	mock.ExpectQuery("SELECT id, name, email, password_hash, phone, role").
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "phone", "role"}))

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoginWrongPasswordMatchesUnknownEmail(t *testing.T) {
	svc, mock, done := newAuthService(t)
	defer done()

	mock.ExpectQuery("SELECT id, name, email, password_hash, phone, role").
		WithArgs("ann@example.com").
		WillReturnRows(userRow(t, "correct"))
	mock.ExpectQuery("SELECT id, name, email, password_hash, phone, role").
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "phone", "role"}))

	_, wrongPass := svc.Login(context.Background(), "ann@example.com", "incorrect")
	_, unknown := svc.Login(context.Background(), "ghost@example.com", "incorrect")

	// Both failures must be indistinguishable to the caller.
	if !domain.IsUnauthorized(wrongPass) || !domain.IsUnauthorized(unknown) {
		t.Fatalf("expected unauthorized for both, got %v / %v", wrongPass, unknown)
	}
	if wrongPass.Error() != unknown.Error() {
		t.Fatalf("error messages differ: %q vs %q", wrongPass.Error(), unknown.Error())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoginIssuesParsableToken(t *testing.T) {
	svc, mock, done := newAuthService(t)
	defer done()

	mock.ExpectQuery("SELECT id, name, email, password_hash, phone, role").
		WithArgs("ann@example.com").
		WillReturnRows(userRow(t, "s3cret"))

	res, err := svc.Login(context.Background(), "ann@example.com", "s3cret")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if res.User.PasswordHash != "" {
		t.Fatalf("password hash must not leave the service")
	}

	claims, err := auth.ParseToken(testSecret, res.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != 12 || claims.Email != "ann@example.com" || claims.Role != "Customer" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
