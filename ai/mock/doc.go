// Package mock provides test double implementations of the AI service
// interfaces.
//
// The mocks allow tests to run without external model services and enable
// controlled, deterministic behavior:
//
//	model := mock.NewMockChatModel()
//	model.CompleteFunc = func(ctx context.Context, system, user string) (string, error) {
//	    return "The INSET day is on Friday [Issue 12](https://west.example.org/n/12).", nil
//	}
//
//	count := model.CallCount()
package mock
