package infrastructure

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"

	"github.com/mwestergaard/minstrel/internal/modules/music/application/ports"
	"github.com/mwestergaard/minstrel/internal/modules/music/domain"
)

// Embed colors.
const (
	colorBlue   = 0x3498DB
	colorGreen  = 0x2ECC71
	colorYellow = 0xF1C40F
	colorRed    = 0xE74C3C
)

// queuePreviewSize is the number of upcoming tracks shown in the status embed.
const queuePreviewSize = 5

// Notifier sends notification embeds to Discord channels.
type Notifier struct {
	session *discordgo.Session
}

var _ ports.NotificationSender = (*Notifier)(nil)

// NewNotifier creates a new Notifier.
func NewNotifier(session *discordgo.Session) *Notifier {
	return &Notifier{session: session}
}

func (n *Notifier) SendInfo(channelID snowflake.ID, message string) error {
	return n.sendEmbed(channelID, message, colorBlue)
}

func (n *Notifier) SendSuccess(channelID snowflake.ID, message string) error {
	return n.sendEmbed(channelID, message, colorGreen)
}

func (n *Notifier) SendWarning(channelID snowflake.ID, message string) error {
	return n.sendEmbed(channelID, message, colorYellow)
}

func (n *Notifier) SendError(channelID snowflake.ID, message string) error {
	return n.sendEmbed(channelID, message, colorRed)
}

func (n *Notifier) sendEmbed(channelID snowflake.ID, message string, color int) error {
	embed := &discordgo.MessageEmbed{
		Description: message,
		Color:       color,
	}

	_, err := n.session.ChannelMessageSendEmbed(channelID.String(), embed)
	return err
}

// SendPlayerStatus sends the player status embed with the control buttons
// attached. now is nil when nothing is playing.
func (n *Notifier) SendPlayerStatus(channelID snowflake.ID, now *domain.Track, upcoming []*domain.Track) error {
	embed := buildPlayerStatusEmbed(now, upcoming)

	_, err := n.session.ChannelMessageSendComplex(channelID.String(), &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{playerControls()},
	})
	return err
}

func buildPlayerStatusEmbed(now *domain.Track, upcoming []*domain.Track) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "\U0001F3B5 Music Player",
		Color: colorBlue,
	}

	if now != nil {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{
				Name:  "Now Playing",
				Value: fmt.Sprintf("%s [%s](%s)", now.Source.Emoji(), now.Title, now.Locator),
			},
			&discordgo.MessageEmbedField{
				Name:   "Duration",
				Value:  now.FormattedDuration(),
				Inline: true,
			},
			&discordgo.MessageEmbedField{
				Name:   "Requested By",
				Value:  fmt.Sprintf("<@%s>", now.RequesterID),
				Inline: true,
			},
		)
		if now.ThumbnailURL != "" {
			embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: now.ThumbnailURL}
		}
	} else {
		embed.Description = "Nothing is playing right now."
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Queue",
		Value: formatQueuePreview(upcoming),
	})

	return embed
}

func formatQueuePreview(upcoming []*domain.Track) string {
	if len(upcoming) == 0 {
		return "The queue is empty."
	}

	var b strings.Builder
	for i, track := range upcoming {
		if i == queuePreviewSize {
			fmt.Fprintf(&b, "*and %d more*", len(upcoming)-queuePreviewSize)
			break
		}
		fmt.Fprintf(&b, "%d. %s %s (%s) | <@%s>\n",
			i+1, track.Source.Emoji(), track.Title, track.FormattedDuration(), track.RequesterID)
	}

	return strings.TrimRight(b.String(), "\n")
}

func playerControls() discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Skip",
				Style:    discordgo.PrimaryButton,
				CustomID: ports.ComponentSkip,
			},
			discordgo.Button{
				Label:    "Pause/Resume",
				Style:    discordgo.SecondaryButton,
				CustomID: ports.ComponentPauseResume,
			},
			discordgo.Button{
				Label:    "Stop",
				Style:    discordgo.DangerButton,
				CustomID: ports.ComponentStop,
			},
			discordgo.Button{
				Label:    "Shuffle",
				Style:    discordgo.SecondaryButton,
				CustomID: ports.ComponentShuffle,
			},
			discordgo.Button{
				Label:    "Clear Queue",
				Style:    discordgo.SecondaryButton,
				CustomID: ports.ComponentClearQueue,
			},
		},
	}
}
