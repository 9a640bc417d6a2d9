package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/fra-anto/wedding-rsvp-api/internal/models"
	"github.com/rs/zerolog"
)

// DiscordNotifier posts RSVP updates to a private channel so the couple
// sees responses as they arrive.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
	log       zerolog.Logger
}

func NewDiscordNotifier(session *discordgo.Session, channelID string, log zerolog.Logger) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
		log:       log.With().Str("component", "discord").Logger(),
	}
}

func (n *DiscordNotifier) NotifyResponse(_ context.Context, guests []models.Guest) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	lines := make([]string, 0, len(guests))
	for _, g := range guests {
		status := "declined 😢"
		if g.ResponseStatus == models.ResponseConfirmed {
			status = "confirmed 🎉"
		}
		line := fmt.Sprintf("**%s %s** %s", g.Name, g.Surname, status)
		if g.MenuType != nil {
			line += fmt.Sprintf(" — menu %s", *g.MenuType)
		}
		if g.DietaryRequirements != nil && *g.DietaryRequirements != "" {
			line += fmt.Sprintf("\n**Dietary:** %s", *g.DietaryRequirements)
		}
		lines = append(lines, line)
	}

	message := fmt.Sprintf("💌 **RSVP Update**\n%s", strings.Join(lines, "\n"))

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		n.log.Error().Err(err).Msg("failed to send discord message")
		return err
	}

	return nil
}
