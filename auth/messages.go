package auth

// Toast titles and messages
const (
	titleError          = "Erro"
	titleSuccess        = "Sucesso"
	titleLoginError     = "Erro no Login"
	titleAuthError      = "Erro na Autenticação"
	titleLogoutError    = "Erro no Logout"
	titleWelcome        = "Bem-vindo!"
	titleLoggedIn       = "Login Realizado"
	titleSessionExpired = "Sessão Expirada"

	msgFillEmailAndPassword = "Preencha e-mail e senha"
	msgLoginSuccess         = "Login realizado com sucesso!"
	msgLoginFailed          = "Erro ao realizar login"
	msgFillAllFields        = "Preencha todos os campos"
	msgPasswordMismatch     = "As senhas não coincidem"
	msgPasswordTooShort     = "A senha deve ter no mínimo 6 caracteres"
	msgRegisterSuccess      = "Cadastro realizado com sucesso!"
	msgRegisterFailed       = "Erro ao realizar cadastro"
	msgSocialStartFailed    = "Não foi possível iniciar o processo de login. Tente novamente."
	msgUnsupportedProvider  = "Provedor de login não suportado"
	msgProviderDefault      = "Erro na autenticação"
	msgInvalidCallback      = "Resposta inválida do servidor de autenticação"
	msgExchangeFailed       = "Não foi possível obter suas informações. Tente fazer login novamente."
	msgUnexpectedAuthError  = "Ocorreu um erro inesperado durante o login. Tente novamente."
	msgCompleteProfile      = "Complete seu cadastro para continuar"
	msgWelcomeBack          = "Bem-vindo de volta!"
	msgLogoutFailed         = "Ocorreu um erro ao realizar logout. Limpando dados locais..."
	msgSessionExpired       = "Sua sessão expirou. Faça login novamente."
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6
