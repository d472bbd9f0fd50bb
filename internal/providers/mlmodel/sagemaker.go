package mlmodel

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
	"github.com/sirupsen/logrus"

	"github.com/loanpilot/backend/internal/scoring"
)

// SageMakerModel invokes a hosted endpoint for the score. The factor
// explanation is always generated locally; the endpoint returns only the
// probability. Any endpoint failure degrades to the rules model instead of
// failing the request.
type SageMakerModel struct {
	client   *sagemakerruntime.Client
	endpoint string
	fallback *RulesModel
	log      *logrus.Logger
}

func NewSageMakerModel(ctx context.Context, region, endpoint string, log *logrus.Logger) (*SageMakerModel, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SageMakerModel{
		client:   sagemakerruntime.NewFromConfig(cfg),
		endpoint: endpoint,
		fallback: NewRulesModel(),
		log:      log,
	}, nil
}

type invokeRequest struct {
	Instances [][]float64 `json:"instances"`
}

type invokeResponse struct {
	Predictions [][]float64 `json:"predictions"`
}

func (m *SageMakerModel) Predict(ctx context.Context, f scoring.Features) (scoring.Prediction, error) {
	body, err := json.Marshal(invokeRequest{
		Instances: [][]float64{{float64(f.CreditScore), f.Income, f.LoanAmount, f.EMI}},
	})
	if err != nil {
		return m.fallback.Predict(ctx, f)
	}

	out, err := m.client.InvokeEndpoint(ctx, &sagemakerruntime.InvokeEndpointInput{
		EndpointName: aws.String(m.endpoint),
		ContentType:  aws.String("application/json"),
		Body:         body,
	})
	if err != nil {
		m.log.WithError(err).Warn("sagemaker invoke failed, using rules model")
		return m.fallback.Predict(ctx, f)
	}

	var resp invokeResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil || len(resp.Predictions) == 0 || len(resp.Predictions[0]) == 0 {
		m.log.WithError(err).Warn("sagemaker response unreadable, using rules model")
		return m.fallback.Predict(ctx, f)
	}

	local := scoring.Score(f)
	score := resp.Predictions[0][0]
	return scoring.Prediction{
		EligibilityScore: score,
		Eligible:         score >= 0.65 && f.CreditScore >= 650,
		Factors:          local.Factors,
	}, nil
}
