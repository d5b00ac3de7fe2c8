package resend

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	resend "github.com/resend/resend-go/v2"

	"github.com/Stieges/hallenfussball-pwa-sub008/repos/livematch"
)

// Service mails the final result of a match to the tournament contact.
type Service struct {
	firestoreClient *firestore.Client
	mailClient      *resend.Client
	hostURL         string
}

// NewService creates a new service. The Resend API key is read from the
// environment.
func NewService(firestoreClient *firestore.Client, hostURL string) *Service {
	resendKey := os.Getenv("RESEND_KEY")
	return &Service{
		firestoreClient: firestoreClient,
		mailClient:      resend.NewClient(resendKey),
		hostURL:         hostURL,
	}
}

// SendResultMail sends the final score of a finished match to the tournament
// contact address. Tournaments without a contact address are skipped.
func (s Service) SendResultMail(ctx context.Context, slug string, match *livematch.LiveMatch) error {
	contact, err := s.contactEmail(ctx, slug)
	if err != nil {
		return err
	}
	if contact == "" {
		log.Printf("No contact email for tournament %s, skipping result mail\n", slug)
		return nil
	}

	combined := match.CombinedScore()
	resultLine := fmt.Sprintf("%s %d : %d %s", match.HomeTeam.Name, combined.Home, combined.Away, match.AwayTeam.Name)
	switch match.DecidedBy {
	case livematch.DecidedOvertime:
		resultLine += " (after overtime)"
	case livematch.DecidedGoldenGoal:
		resultLine += " (golden goal)"
	case livematch.DecidedPenalty:
		resultLine += fmt.Sprintf(" (%d : %d on penalties)", match.Penalties.Home, match.Penalties.Away)
	}

	body := getEmailTemplate(resultLine, fmt.Sprintf("%s/t/%s", s.hostURL, slug))
	params := &resend.SendEmailRequest{
		From:    "results@resend.dev",
		To:      []string{contact},
		Subject: fmt.Sprintf("Final result for match %d", match.Number),
		Html:    body,
	}

	if _, err := s.mailClient.Emails.Send(params); err != nil {
		log.Printf("Failed to send result mail request: %v\n", err)
		return err
	}
	return nil
}

func (s Service) contactEmail(ctx context.Context, slug string) (string, error) {
	doc, err := s.firestoreClient.Collection("Tournaments").Doc(slug).Get(ctx)
	if err != nil {
		return "", err
	}
	if data, err := doc.DataAt("ContactEmail"); err == nil {
		if email, ok := data.(string); ok {
			return email, nil
		}
	}
	return "", nil
}

func getEmailTemplate(resultLine, url string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: Arial, sans-serif;
            background-color: #f4f4f4;
            margin: 0;
            padding: 20px;
        }
        .container {
            background-color: #ffffff;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            box-shadow: 0 0 10px rgba(0,0,0,0.1);
        }
        .result {
            font-size: 20px;
            text-align: center;
            margin: 20px 0;
        }
        .button {
            display: block;
            width: 200px;
            height: 50px;
            margin: 20px auto;
            background-color: #007BFF;
            color: #ffffff;
            font-size: 16px;
            text-align: center;
            line-height: 50px;
            text-decoration: none;
            border-radius: 5px;
        }
        .button:hover {
            background-color: #0056b3;
        }
    </style>
</head>
<body>
    <div class="container">
        <h2>Final whistle</h2>
        <p class="result">%s</p>
        <a href="%s" class="button">View tournament</a>
    </div>
</body>
</html>`, resultLine, url)
}
