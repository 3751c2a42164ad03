package usecase

import (
	"fmt"

	"github.com/xavierca1/streamtv-site/internal/entity"
)

const whatsAppMessageTemplate = `🔥 Nouvelle demande d'abonnement StreamTV 🔥

👤 *Nom:* %[1]s
📧 *Email:* %[2]s
📱 *Téléphone:* %[3]s

📺 *Plan choisi:* %[4]s
💰 *Prix:* %[5]s

🚀 Bonjour ! Je souhaite souscrire à l'abonnement "%[4]s". Pouvez-vous me contacter pour finaliser mon inscription ?

Merci ! 😊`

// BuildWhatsAppMessage monta a mensagem pré-preenchida que o atendimento recebe para o lead.
func BuildWhatsAppMessage(lead *entity.SubscriptionLead, formattedPrice string) string {
	return fmt.Sprintf(whatsAppMessageTemplate,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.PlanName,
		formattedPrice,
	)
}
