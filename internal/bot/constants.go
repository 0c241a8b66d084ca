package bot

// Reply keyboard captions. Incoming text is matched against them verbatim.
const (
	BtnUseCode        = "🔑 Utiliser Code"
	BtnSubscribe      = "💎 S'abonner"
	BtnConnect        = "🔗 Connecter WhatsApp"
	BtnStatus         = "📊 Statut"
	BtnSettings       = "⚙️ Paramètres WhatsApp"
	BtnHelp           = "🆘 Aide"
	BtnMainMenu       = "📱 Menu Principal"
	BtnQRCode         = "📱 QR Code"
	BtnPairingCode    = "🔢 Pairing Code"
	BtnFreeTrial      = "🎯 Essai 24h Gratuit"
	BtnBuyPremium     = "💎 Acheter Premium"
	BtnGenerateCode   = "🔑 Générer Code"
	BtnStatistics     = "📊 Statistiques"
	BtnUpgrade        = "🔄 Mise à Jour"
	BtnCommands       = "⚙️ Commandes"
	BtnUsers          = "👥 Utilisateurs"
	BtnSilentOn       = "🔇 Activer Mode Silencieux"
	BtnSilentOff      = "🔊 Désactiver Mode Silencieux"
	BtnPrivateOn      = "🔒 Activer Mode Privé"
	BtnPrivateOff     = "🔓 Désactiver Mode Privé"
	BtnManageAccess   = "👥 Gérer Accès"
	BtnConfirmUpgrade = "✅ Confirmer la mise à jour"
	BtnForceUpgrade   = "⚡ Forcer la mise à jour"
	BtnCancelUpgrade  = "❌ Annuler"
)

// Slash commands.
const (
	CmdStart            = "start"
	CmdHelp             = "help"
	CmdUseCode          = "use_code"
	CmdSubscribe        = "subscribe"
	CmdConnect          = "connect"
	CmdStatus           = "status"
	CmdMenu             = "menu"
	CmdWhatsAppSettings = "whatsapp_settings"
	CmdAdmin            = "admin"
	CmdGenerateCode     = "generate_code"
	CmdStats            = "stats"
	CmdUpgrade          = "upgrade"
	CmdCommands         = "commands"
)

const (
	defaultPlan          = "monthly"
	usersPreview         = 10
	dateLayout           = "02/01/2006"
	notAvailable         = "N/A"
	qrPhotoName          = "whatsapp-qr.png"
	sessionMethodQR      = "qr"
	sessionMethodPairing = "pairing"
)
