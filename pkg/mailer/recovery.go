package mailer

import (
	"context"
	"fmt"
	"strings"
)

const recoverySubject = "Envio de senha"

// RecoveryMailer builds and sends the password-recovery message. When
// disabled, sends are skipped and reported as successful so environments
// without a mail account keep working.
type RecoveryMailer struct {
	MG      *Mailgun
	Enabled bool
}

func NewRecoveryMailer(mg *Mailgun, enabled bool) *RecoveryMailer {
	return &RecoveryMailer{MG: mg, Enabled: enabled}
}

// SendRecoveredPassword mails the account's login and password to its
// registered address.
func (m *RecoveryMailer) SendRecoveredPassword(ctx context.Context, name, mail, login, password string) error {
	if !m.Enabled {
		return nil
	}
	return m.MG.Send(ctx, mail, recoverySubject, RecoveryBody(name, login, password))
}

// RecoveryBody renders the HTML body, greeting the user by first name.
func RecoveryBody(name, login, password string) string {
	var b strings.Builder
	b.WriteString(`<p><center><b><h2>Terras App - Recuperação de senha</h2></b></center><p>`)
	b.WriteString(`<p/></p>`)
	fmt.Fprintf(&b, `<p>Olá %s, estamos enviando para você a sua senha, caso não consiga fazer o login, entre em contato com o nosso suporte técnico.`, firstName(name))
	b.WriteString(`<br/><br/>`)
	fmt.Fprintf(&b, `<p><b>Login:</b> %s`, login)
	fmt.Fprintf(&b, `<p><b>Senha:</b> %s`, password)
	b.WriteString(`<br/><br/>`)
	b.WriteString(`<p>Atenciosamente</p>`)
	b.WriteString(`<p>Equipe Terras App</p>`)
	b.WriteString(`<hr/>`)
	return b.String()
}

func firstName(name string) string {
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}
