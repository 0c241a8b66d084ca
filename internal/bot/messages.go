package bot

import (
	"fmt"
	"strings"

	"novamd-bot/pkg/api"
)

// Texts are plain; reply escapes them for MarkdownV2.

const (
	msgServerDown = "Erreur de connexion\n\nLe serveur ne répond pas. Réessayez plus tard."
	msgAdminOnly  = "Accès réservé aux administrateurs."
	msgNoAccess   = "Accès non autorisé\n\nVous n'avez pas d'abonnement actif."
	msgMainMenu   = "⚡ Menu Principal NOVA-MD\n\nChoisissez une option:"
	msgCheckCode  = "🔄 Validation du code..."
	msgQRPending  = "🔄 Génération du QR Code..."
	msgQRLater    = "⏳ Session créée\n\nLe QR code vous sera envoyé dans quelques secondes."
	msgQRCaption  = "Scannez-moi avec WhatsApp 📲"
	msgPairing    = "🔄 Génération du code de pairing..."
	msgPairingOK  = "✅ Code de pairing généré!\n\nLe serveur prépare votre code...\nVous le recevrez dans quelques secondes."
	msgTrialStart = "🎯 Démarrage de votre essai gratuit 24h!\n\nCréation de votre session WhatsApp..."
	msgTrialOK    = "✅ Essai activé pour 24 heures!\n\nVous pouvez maintenant connecter WhatsApp.\nChoisissez la méthode de connexion:"
	msgNeedAccess = "Accès requis\n\nVous devez avoir un abonnement actif."
	msgNoUsers    = "Aucun utilisateur actif trouvé."
	msgUpgradeNo  = "✅ Le bot est à jour."
	msgUpgradeCxl = "Mise à jour annulée."
	msgCheckingUp = "🔄 Vérification des mises à jour..."
	msgUpgrading  = "🔄 Mise à jour en cours..."
	msgUnknownErr = "Erreur inconnue"
)

const msgWelcome = `🤖 Bienvenue sur NOVA-MD Premium 🤖

Service de Bot WhatsApp Automatisé avec Sessions Persistantes

🎯 Fonctionnalités Premium:
• Commandes audio avancées
• Gestion de médias intelligente
• Sessions WhatsApp permanentes
• Support prioritaire 24/7
• Mises à jour automatiques
• Mode silencieux
• Contrôle d'accès

🔐 Système d'Accès Unique:
• 1 code d'accès = 1 utilisateur
• 1 utilisateur = 1 device WhatsApp
• Session permanente selon la durée

Utilisez les boutons ci-dessous pour naviguer!`

const msgUseCode = `🔑 Activation du code d'accès

Veuillez entrer le code que vous avez reçu de l'administrateur:

Format: NOVA-XXXXXXX

Important:
• Un code ne peut être utilisé qu'UNE SEULE FOIS
• Un code = Un utilisateur = Un device WhatsApp
• Votre session sera permanente selon la durée du code`

const msgBadCode = `Format de code invalide

Le code doit être au format: NOVA-XXXXXXX

Veuillez réessayer:`

const msgBadPhone = "Numéro invalide\n\nVeuillez entrer un numéro valide (ex: 237612345678):"

const msgAskPhone = `📱 Connexion par Pairing Code

Veuillez entrer votre numéro de téléphone WhatsApp:

• Format: 237612345678 (sans espaces, sans +)
• Exemple: 237612345678 pour le Cameroun

🔒 Confidentialité:
• Votre numéro est utilisé UNIQUEMENT pour générer le code
• Il n'est JAMAIS sauvegardé dans notre base de données

⚠️ Important:
• Utilisez le même numéro que sur votre téléphone
• Le numéro doit être actif et avoir WhatsApp`

const msgTrialChoice = `🔗 Options de Connexion WhatsApp

📱 Mode Essai Gratuit (24h):
• Session WhatsApp temporaire
• Fonctionnalités de base
• Parfaite pour tester

💎 Premium (Recommandé):
• Session PERMANENTE
• Toutes les fonctionnalités
• Support prioritaire

Choisissez une option:`

const msgAdminPanel = `👑 Panel Administrateur NOVA-MD

Commandes disponibles:
• /generate_code - Créer un code d'accès
• /stats - Statistiques du système
• /upgrade - Mettre à jour le bot
• /commands - Gérer les commandes

Utilisez les boutons ci-dessous ou les commandes!`

const msgGenerateHelp = `🔑 Génération de code

Utilisez la commande: /generate_code <plan> <durée>

Exemples:
/generate_code monthly
/generate_code yearly 365
/generate_code custom 60`

const msgManageAccess = `👥 Gestion des accès WhatsApp

Pour restreindre l'accès à des numéros spécifiques:

1. Allez sur WhatsApp
2. Envoyez cette commande à votre bot:
!private +237612345678 +237698765432

Pour autoriser tout le monde:
!private all

Exemples:
• !private +237612345678 - Un seul numéro
• !private +237612345678 +237698765432 - Deux numéros
• !private all - Tout le monde (par défaut)`

// QRInstructions precedes the QR image. validUntil may be empty.
func QRInstructions(validUntil string) string {
	var sb strings.Builder
	sb.WriteString("📱 Connexion WhatsApp - QR Code\n\n")
	sb.WriteString("1. Ouvrez WhatsApp → Paramètres\n")
	sb.WriteString("2. Appareils liés → Lier un appareil\n")
	sb.WriteString("3. Scannez le QR code ci-dessous\n")
	sb.WriteString("4. Attendez la confirmation\n\n")
	sb.WriteString("🔐 SESSION PERMANENTE\n")
	if validUntil != "" {
		fmt.Fprintf(&sb, "Valable jusqu'au %s\n\n", validUntil)
	} else {
		sb.WriteString("Votre session restera active automatiquement\n\n")
	}
	sb.WriteString("⏱️ Le QR expire dans 2 minutes")
	return sb.String()
}

// QRFallback carries the raw payload when no image could be produced.
func QRFallback(payload string) string {
	return fmt.Sprintf("❌ Impossible de générer l'image QR\n\nCode texte: %s\n\nCopiez ce code manuellement dans WhatsApp", payload)
}

// PairingInstructions is pushed by the backend once the pairing code exists.
func PairingInstructions(code string) string {
	return fmt.Sprintf(`🔐 Connexion par Code de Pairing

📱 Votre code de pairing:
%s

Instructions:
1. Ouvrez WhatsApp sur votre téléphone
2. Allez dans Paramètres → Appareils liés
3. Sélectionnez Lier un appareil
4. Entrez le code ci-dessus
5. Attendez la confirmation

⏱️ Ce code expire dans 5 minutes

La connexion se fera automatiquement!`, code)
}

func subscribeText(support string) string {
	return fmt.Sprintf(`💎 Abonnement NOVA-MD Premium

Comment obtenir l'accès:
1. Contactez l'administrateur %[1]s
2. Choisissez votre formule préférée
3. Recevez votre code d'accès unique
4. Utilisez le bouton %[2]s

Formules disponibles:
• 1 mois - Session permanente 30 jours
• 3 mois - Session permanente 90 jours
• 6 mois - Session permanente 180 jours
• 1 an - Session permanente 365 jours

Avantages inclus:
🔐 Session WhatsApp PERMANENTE
📱 1 code = 1 utilisateur = 1 device
⚡ Connexion QR Code ou Pairing Code
🔇 Mode silencieux
🔒 Contrôle d'accès
🛡️ Support prioritaire 24/7

Contact pour abonnement:
%[1]s`, support, BtnUseCode)
}

func helpText(support string) string {
	return fmt.Sprintf(`🆘 Aide NOVA-MD

Navigation:
Utilisez les boutons du clavier pour naviguer facilement!

Fonctionnalités:
• %s - Activer un code d'accès
• %s - Informations abonnement
• %s - Options connexion
• %s - Vérifier votre statut
• %s - Configurer le bot
• %s - Retour au menu

Sessions Permanentes:
• Abonnés: Session WhatsApp permanente
• 1 code = 1 utilisateur = 1 device
• Pas de reconnexion nécessaire

Support:
Problèmes? Contactez %s`, BtnUseCode, BtnSubscribe, BtnConnect, BtnStatus, BtnSettings, BtnMainMenu, support)
}

func connectMethodsText(endDate string) string {
	return fmt.Sprintf(`🔗 Choisissez la méthode de connexion:

📱 QR Code - Scannez avec l'appareil photo
🔢 Pairing Code - Entrez un code numérique

💡 Session permanente active jusqu'au %s`, orNA(endDate))
}

func codeAcceptedText(plan string, duration int, expires string) string {
	return fmt.Sprintf(`✅ Code validé avec succès!

🎉 Félicitations! Votre accès NOVA-MD Premium est maintenant activé.

📋 Détails de votre abonnement:
• Plan: %s
• Durée: %d jours
• Expire le: %s

🔐 Fonctionnalités activées:
• Session WhatsApp PERMANENTE
• Commandes audio avancées
• Gestion de médias intelligente
• Mode silencieux
• Contrôle d'accès
• Support prioritaire 24/7

🚀 Prochaine étape:
Utilisez le bouton %s pour commencer!`, Capitalize(plan), duration, expires, BtnConnect)
}

func codeRejectedText(reason, support string) string {
	if reason == "" {
		reason = msgUnknownErr
	}
	return fmt.Sprintf("Code invalide\n\nRaison: %s\n\nVérifiez le code ou contactez %s", reason, support)
}

func sessionActiveText(days int, endDate string) string {
	return fmt.Sprintf("✅ Session déjà active!\n\nSession permanente active depuis %d jours\nActive jusqu'au %s", days, orNA(endDate))
}

func statusText(access *api.Access, session *api.Session) string {
	plan := notAvailable
	if access.Plan != "" {
		plan = Capitalize(access.Plan)
	}
	sessionState := "🔴 Non connectée"
	if session.Connected() {
		sessionState = "🟢 Connectée"
	}
	return fmt.Sprintf(`✅ Statut NOVA-MD Premium

💎 Abonnement:
• Plan: %s
• Jours restants: %d
• Expire le: %s

📱 Session WhatsApp:
• Statut: %s
• Type: Session permanente
• Device: Unique (1 code = 1 device)

💡 Votre session reste active automatiquement!`, plan, access.DaysLeft, FormatDate(access.EndDate), sessionState)
}

func noAccessStatusText(support string) string {
	return fmt.Sprintf(`❌ Statut: Accès non activé

Vous n'avez pas d'abonnement actif.

📋 Pour obtenir l'accès:
1. Contactez %s
2. Choisissez votre formule
3. Recevez votre code unique
4. Utilisez le bouton %s`, support, BtnUseCode)
}

func enabledLabel(on bool) string {
	if on {
		return "✅ ACTIVÉ"
	}
	return "❌ Désactivé"
}

func settingsText(s *api.WhatsAppSettings) string {
	allowed := "Tout le monde"
	if len(s.AllowedUsers) > 0 {
		allowed = strings.Join(s.AllowedUsers, ", ")
	}
	return fmt.Sprintf(`⚙️ Paramètres WhatsApp - NOVA-MD

🔇 Mode Silencieux: %s
• Seul vous voyez les réponses aux commandes
• Les autres ne voient ni la commande ni le résultat

🔒 Mode Privé: %s
• Contrôle qui peut utiliser votre bot WhatsApp
• Numéros autorisés: %s

Commandes WhatsApp disponibles:
!silent - Activer/désactiver le mode silencieux
!private - Gérer les accès
!private +237612345678 - Autoriser un numéro
!private all - Autoriser tout le monde
!settings - Voir les paramètres
!help - Aide complète`, enabledLabel(s.SilentMode), enabledLabel(s.PrivateMode), allowed)
}

func generatedCodeText(c *api.GeneratedCode, plan, expires string) string {
	return fmt.Sprintf(`✅ Code d'accès généré

🔑 Code: %s
📅 Plan: %s
⏱️ Durée: %d jours
📅 Expire le: %s

Instructions:
• Le code est utilisable par UN SEUL utilisateur
• UN SEUL device WhatsApp peut être connecté
• Valable jusqu'à la date d'expiration`, c.Code, plan, c.Duration, expires)
}

func statsText(s *api.SystemStats, live *api.SessionsHealth) string {
	liveLine := notAvailable
	if live != nil {
		liveLine = fmt.Sprintf("%d/%d", live.Connected, live.Total)
	}
	return fmt.Sprintf(`📊 Statistiques NOVA-MD

👥 Utilisateurs:
• Abonnés actifs: %d
• Codes générés: %d
• Codes utilisés: %d

📱 Sessions:
• Total: %d
• Connectées: %d
• Sessions permanentes: %d
• Connectées en direct: %s

🔄 Système:
• Version: v%s
• Uptime: %.0f secondes
• Statut: %s`,
		s.ActiveSubs, s.TotalCodes, s.UsedCodes,
		s.SessionStats.Total, s.SessionStats.Connected, s.SessionStats.PersistentSessions, liveLine,
		orNA(s.Version.String()), s.Uptime, orNA(s.ResourceStats.Status))
}

func commandsText(info *api.CommandsInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "⚙️ Gestion des Commandes\n\n📁 Commandes personnalisées: %d\n\nCatégories:\n", info.Total)
	if len(info.Categories) == 0 {
		sb.WriteString("Utilisez /help pour voir toutes les commandes disponibles.\n")
	} else {
		for _, name := range sortedKeys(info.Categories) {
			fmt.Fprintf(&sb, "• %s: %d\n", name, info.Categories[name])
		}
	}
	sb.WriteString("\nPour ajouter une commande:\nContactez le développeur ou utilisez le système de mise à jour.")
	return sb.String()
}

func usersText(users []api.User) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "👥 Utilisateurs Actifs\n\nTotal: %d utilisateurs\n\nDerniers utilisateurs:\n", len(users))
	for i, u := range users {
		if i == usersPreview {
			break
		}
		fmt.Fprintf(&sb, "• %s (%s)\n", orNA(u.FirstName), orNA(u.ChatID.String()))
	}
	fmt.Fprintf(&sb, "\nPour plus de détails: /%s", CmdStats)
	return sb.String()
}

func updateAvailableText(u *api.UpdateCheck) string {
	text := fmt.Sprintf("🆕 Mise à jour disponible\n\n• Version actuelle: v%s\n• Nouvelle version: v%s",
		orNA(u.CurrentVersion.String()), orNA(u.LatestVersion.String()))
	if u.Changelog != "" {
		text += "\n\nChangements:\n" + u.Changelog
	}
	return text + "\n\nConfirmez-vous la mise à jour?"
}

func upToDateText(u *api.UpdateCheck) string {
	return fmt.Sprintf("%s\n\nVersion actuelle: v%s\n\nVous pouvez forcer la réinstallation ci-dessous.",
		msgUpgradeNo, orNA(u.CurrentVersion.String()))
}

func upgradeDoneText(r *api.UpgradeResult) string {
	text := fmt.Sprintf("✅ Mise à jour effectuée\n\nVersion: v%s", orNA(r.Version.String()))
	if r.Message != "" {
		text += "\n\n" + r.Message
	}
	return text
}
