package nlufn

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "run as an AWS Lambda function",
	Long:  `Start the Lambda runtime loop and handle invocations until the process is stopped`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, p, err := newHandler()
		if err != nil {
			return err
		}

		logger.WithField("backend", cfg.Model.Backend).Info("starting lambda handler")
		lambda.StartWithOptions(h, lambda.WithEnableSIGTERM(func() {
			_ = p.Close()
		}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lambdaCmd)
}
