package cloud

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"

	"github.com/airflow-ai/congestion-dashboard/internal/congestion"
	"github.com/airflow-ai/congestion-dashboard/internal/domain"
)

// SNSClient publishes congestion alerts to an SNS topic.
type SNSClient struct {
	svc      *sns.Client
	topicArn string
}

func NewSNSClient(ctx context.Context, region, topicArn string) (*SNSClient, error) {
	if topicArn == "" {
		return nil, fmt.Errorf("sns topic arn is empty")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &SNSClient{
		svc:      sns.NewFromConfig(cfg),
		topicArn: topicArn,
	}, nil
}

func (c *SNSClient) SendAlert(ctx context.Context, subject, message string) error {
	out, err := c.svc.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}
	log.Info().Str("message_id", aws.ToString(out.MessageId)).Msg("alert sent")
	return nil
}

// NotifyCritical publishes a summary of a CRITICAL analysis.
func (c *SNSClient) NotifyCritical(ctx context.Context, runID string, res *domain.AnalysisResult) error {
	subject, message := CriticalAlert(runID, res)
	return c.SendAlert(ctx, subject, message)
}

// CriticalAlert formats the subject and body of a critical congestion alert.
func CriticalAlert(runID string, res *domain.AnalysisResult) (string, string) {
	m := res.CurrentMetrics
	var b strings.Builder
	fmt.Fprintf(&b, "Terminal Congestion Alert\n\n")
	fmt.Fprintf(&b, "Run: %s\n", runID)
	fmt.Fprintf(&b, "Current passengers: %d / %d\n", m.CCTVCount, m.TerminalCapacity)
	fmt.Fprintf(&b, "Utilization: %.1f%%\n", m.UtilizationRate)

	peak, at := -1.0, ""
	for _, p := range res.Forecast.Window(congestion.HorizonSlots) {
		if p.UtilizationRate > peak {
			peak, at = p.UtilizationRate, p.Timestamp
		}
	}
	if at != "" {
		fmt.Fprintf(&b, "Peak forecast: %.1f%% at %s\n", peak, at)
	}
	if len(res.Recommendations) > 0 {
		b.WriteString("\nRecommendations:\n")
		for i, r := range res.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, r)
		}
	}
	return "Terminal congestion CRITICAL", b.String()
}
