package caption

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys
const (
	keyTitle    = "hero.title"
	keyAlias    = "hero.alias"
	keySubtitle = "hero.subtitle"
	keyHint     = "hero.hint"
)

func init() {
	en := language.English
	message.SetString(en, keyTitle, "Hi, I'm Dasfax")
	message.SetString(en, keyAlias, "(aka %s)")
	message.SetString(en, keySubtitle, "Developer building web apps, games and the occasional terminal toy.")
	message.SetString(en, keyHint, "move the mouse · press q to quit")

	fr := language.French
	message.SetString(fr, keyTitle, "Salut, moi c'est Dasfax")
	message.SetString(fr, keyAlias, "(alias %s)")
	message.SetString(fr, keySubtitle, "Développeur d'applications web, de jeux et de quelques jouets pour le terminal.")
	message.SetString(fr, keyHint, "bougez la souris · q pour quitter")
}
