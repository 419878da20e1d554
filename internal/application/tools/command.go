package tools

import (
	"context"

	"github.com/doeshing/toolgate/internal/domain"
)

const shellReason = "Shell interpretation of the command line"

// RunCommand spawns the program and reports its exit code and both output
// streams. A non-zero exit is an observation with status "error", not a
// Failed outcome.
func (s *Service) RunCommand(ctx context.Context, req domain.RunCommand) domain.Outcome {
	kind := req.Kind()
	line := req.CommandLine()
	if req.Shell && !s.AllowShell {
		return s.fail(kind, line, domain.ErrShellDisabled)
	}

	risk := s.assessCommand(req)
	description := "run command " + line
	if req.Shell {
		description = "run shell command " + line
	}
	if out, ok := s.authorize(kind, line, description, risk); !ok {
		return out
	}

	s.Reporter.Started(kind, line)
	var (
		result domain.CommandResult
		err    error
	)
	if req.Shell {
		result, err = s.Runner.RunShell(ctx, line)
	} else {
		result, err = s.Runner.Run(ctx, req.Program, req.Args)
	}
	if err != nil {
		return s.fail(kind, line, err)
	}

	s.Logger.Debug("command finished", map[string]interface{}{
		"command":   line,
		"exit_code": result.ExitCode,
	})
	out := domain.Succeeded(kind)
	if result.ExitCode != 0 {
		out.Status = domain.StatusError
		s.Reporter.Failed(kind, line, "exited with a non-zero status")
	}
	out.CommandResult = &result
	return out
}

// assessCommand classifies the joined line, escalates on any argument that
// names a protected path, and always treats shell interpretation as dangerous.
func (s *Service) assessCommand(req domain.RunCommand) domain.RiskAssessment {
	risk := s.Classifier.ClassifyCommand(req.CommandLine())
	for _, arg := range req.Args {
		risk = risk.Merge(s.Classifier.ClassifyPath(arg))
	}
	if req.Shell {
		risk.Tier = domain.RiskDangerous
		risk.Reasons = append(risk.Reasons, shellReason)
	}
	return risk
}
