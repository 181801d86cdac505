// Package notify publishes contest lifecycle events over MQTT. The admin
// panel subscribes to the contests topic for live updates; user-facing
// clients subscribe to their own notifications topic.
package notify

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/numanubhani/adminpanel-integration-se/internal/model"
)

const (
	topicContestsGenerated = "contests/generated"
	topicUserNotifications = "users/%d/notifications"
)

// Publisher fans out platform events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	ContestGenerated(c model.Contest)
	ContributorJoined(contributor model.Profile, contest model.Contest, followers []int)
	Close()
}

type mqttPublisher struct {
	client mqtt.Client
}

// NewMQTTPublisher connects to the broker and returns a Publisher.
func NewMQTTPublisher(brokerURL, clientID string) (Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Error().Err(err).Msg("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &mqttPublisher{client: client}, nil
}

func (p *mqttPublisher) publish(topic string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to marshal event")
		return
	}
	token := p.client.Publish(topic, 1, false, body)
	token.Wait()
	if token.Error() != nil {
		log.Error().Err(token.Error()).Str("topic", topic).Msg("failed to publish event")
	}
}

func (p *mqttPublisher) ContestGenerated(c model.Contest) {
	p.publish(topicContestsGenerated, map[string]any{
		"event":      "contest_generated",
		"contest_id": c.ID,
		"title":      c.Title,
		"category":   c.Category,
		"start_time": c.StartTime,
		"end_time":   c.EndTime,
	})
}

func (p *mqttPublisher) ContributorJoined(contributor model.Profile, contest model.Contest, followers []int) {
	for _, followerID := range followers {
		p.publish(fmt.Sprintf(topicUserNotifications, followerID), map[string]any{
			"event":        "contributor_joined",
			"contributor":  contributor.ScreenName,
			"contest_id":   contest.ID,
			"contest_name": contest.Title,
		})
	}
}

func (p *mqttPublisher) Close() {
	p.client.Disconnect(250)
}

// Nop is the Publisher used when no broker is configured.
type Nop struct{}

func (Nop) ContestGenerated(model.Contest)                        {}
func (Nop) ContributorJoined(model.Profile, model.Contest, []int) {}
func (Nop) Close()                                                {}
