package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/atelieperto/atelieperto/internal/client/models"
	"github.com/atelieperto/atelieperto/internal/common"
)

// stubInputs replaces the interactive input seams. Text prompts are answered
// from the answers slice in order.
func stubInputs(t *testing.T, answers []string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", errors.New("no more answers")
		}
		a := answers[i]
		i++
		return a, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

type fakeSession struct {
	user *models.User

	loginErr error
	regMsg   string
	regErr   error
	resetMsg string
	resetErr error

	regData      models.RegisterData
	logoutCalled bool
	restored     bool
}

func (f *fakeSession) Restore(context.Context) { f.restored = true }
func (f *fakeSession) Login(_ context.Context, username, password string) (*models.User, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.user = &models.User{Username: username, Token: "token_1"}
	return f.user, nil
}
func (f *fakeSession) Register(_ context.Context, data models.RegisterData) (string, error) {
	f.regData = data
	return f.regMsg, f.regErr
}
func (f *fakeSession) Logout(context.Context) error {
	f.logoutCalled = true
	f.user = nil
	return nil
}
func (f *fakeSession) RequestPasswordReset(string) (string, error) { return f.resetMsg, f.resetErr }
func (f *fakeSession) IsAuthenticated() bool                       { return f.user != nil }
func (f *fakeSession) User() *models.User                          { return f.user }

func TestRegister_Success(t *testing.T) {
	f := &fakeSession{regMsg: "Cadastro realizado com sucesso! Faça login com suas credenciais."}
	var out bytes.Buffer
	a := &App{session: f, out: &out}

	restore := stubInputs(t, []string{"Ana", "Paula", "ana", "ana@example.com"}, []byte("secret"))
	defer restore()

	if err := a.Register(context.Background()); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if f.regData.Username != "ana" || f.regData.Email != "ana@example.com" {
		t.Fatalf("register data mismatch: %+v", f.regData)
	}
	if f.regData.Password != "secret" {
		t.Fatalf("register password mismatch: %q", f.regData.Password)
	}
	if !bytes.Contains(out.Bytes(), []byte("Cadastro realizado")) {
		t.Fatalf("missing confirmation: %q", out.String())
	}
	// registration never logs the user in
	if a.isLoggedIn() {
		t.Fatal("registration must not authenticate")
	}
}

func TestLogin_Success(t *testing.T) {
	f := &fakeSession{}
	var out bytes.Buffer
	a := &App{session: f, out: &out}

	restore := stubInputs(t, []string{"ana"}, []byte("12345"))
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if !a.isLoggedIn() {
		t.Fatal("expected authenticated session")
	}
	if !bytes.Contains(out.Bytes(), []byte("Bem-vindo, ana!")) {
		t.Fatalf("missing greeting: %q", out.String())
	}
}

func TestLogin_InvalidCredentialsPrintsMessage(t *testing.T) {
	f := &fakeSession{loginErr: common.ErrInvalidCredentials}
	var out bytes.Buffer
	a := &App{session: f, out: &out}

	restore := stubInputs(t, []string{"ana"}, []byte("wrong"))
	defer restore()

	err := a.Login(context.Background())
	if !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("credenciais inválidas")) {
		t.Fatalf("missing failure message: %q", out.String())
	}
}

func TestForgot(t *testing.T) {
	f := &fakeSession{resetMsg: "Password reset instructions have been sent to your email."}
	var out bytes.Buffer
	a := &App{session: f, out: &out}

	restore := stubInputs(t, []string{"ana@example.com"}, nil)
	defer restore()

	if err := a.Forgot(context.Background()); err != nil {
		t.Fatalf("Forgot err: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("reset instructions")) {
		t.Fatalf("missing confirmation: %q", out.String())
	}
}

func TestLogout(t *testing.T) {
	f := &fakeSession{user: &models.User{Username: "ana"}}
	var out bytes.Buffer
	a := &App{session: f, out: &out}

	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if !f.logoutCalled {
		t.Fatal("session.Logout not called")
	}
	if a.isLoggedIn() {
		t.Fatal("still authenticated after logout")
	}
}
