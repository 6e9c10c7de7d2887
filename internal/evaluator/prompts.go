package evaluator

import (
	"fmt"
	"strings"

	"go-interview-backend/internal/domain"
)

type levelGuideline struct {
	Focus      string
	Difficulty string
}

type roleGuideline struct {
	Description string
	Topics      []string
	Levels      [5]levelGuideline
}

// roleGuidelines drives prompt construction per role and experience level.
var roleGuidelines = map[string]roleGuideline{
	"frontend": {
		Description: "Frontend Engineer",
		Topics:      []string{"React/Vue/Angular", "JavaScript/TypeScript", "CSS/Styling", "Performance", "Accessibility", "State Management", "Browser APIs", "Build Tools"},
		Levels: [5]levelGuideline{
			{"HTML, CSS basics, JavaScript fundamentals, basic React concepts", "basic concepts and syntax"},
			{"Component lifecycle, state management, event handling, responsive design", "practical implementation"},
			{"Advanced hooks, performance optimization, complex state management, testing", "optimization and best practices"},
			{"Architecture decisions, scalability, advanced patterns, team leadership", "system design and mentoring"},
			{"Framework internals, micro-frontends, performance at scale, technical strategy", "expert-level architecture"},
		},
	},
	"backend": {
		Description: "Backend Engineer",
		Topics:      []string{"API Design", "Databases", "System Architecture", "Security", "Scalability", "Caching", "Message Queues", "Microservices"},
		Levels: [5]levelGuideline{
			{"REST APIs, basic database queries, HTTP methods, simple CRUD operations", "fundamental concepts"},
			{"Database relationships, authentication, error handling, API documentation", "practical development"},
			{"Database optimization, caching strategies, API security, testing", "performance and security"},
			{"System design, scalability patterns, microservices, database sharding", "distributed systems"},
			{"High-scale architecture, complex distributed systems, technical leadership", "enterprise architecture"},
		},
	},
	"hr": {
		Description: "HR/Behavioral Interview",
		Topics:      []string{"Communication", "Teamwork", "Problem Solving", "Leadership", "Conflict Resolution", "Adaptability", "Work Ethics"},
		Levels: [5]levelGuideline{
			{"Basic communication, learning attitude, teamwork, career goals", "entry-level scenarios"},
			{"Project collaboration, handling feedback, time management, growth mindset", "workplace situations"},
			{"Leading small tasks, mentoring juniors, handling conflicts, project ownership", "leadership scenarios"},
			{"Team leadership, strategic thinking, stakeholder management, decision making", "management situations"},
			{"Organizational impact, technical strategy, culture building, executive presence", "leadership at scale"},
		},
	},
	"aiml": {
		Description: "AI/ML Engineer",
		Topics:      []string{"Machine Learning", "Deep Learning", "Data Processing", "Model Training", "Feature Engineering", "MLOps", "Statistics"},
		Levels: [5]levelGuideline{
			{"Basic ML concepts, Python, data structures, simple algorithms", "fundamental ML concepts"},
			{"Supervised learning, model evaluation, feature engineering, basic neural networks", "practical ML implementation"},
			{"Advanced algorithms, hyperparameter tuning, model deployment, A/B testing", "production ML systems"},
			{"ML system design, model optimization, MLOps, team leadership", "scalable ML architecture"},
			{"Research-level problems, novel architectures, ML strategy, technical leadership", "cutting-edge ML"},
		},
	},
	"fullstack": {
		Description: "Fullstack Engineer",
		Topics:      []string{"Frontend Frameworks", "API Design", "Databases", "Authentication", "Deployment", "Caching", "Testing", "System Integration"},
		Levels: [5]levelGuideline{
			{"HTML/CSS/JS basics, simple REST APIs, basic database queries", "fundamental concepts"},
			{"Frontend-backend integration, authentication flows, relational modeling", "practical development"},
			{"Performance tuning across the stack, caching, end-to-end testing", "cross-stack optimization"},
			{"Full-system design, service boundaries, data consistency, mentoring", "system design"},
			{"Platform architecture, build/deploy pipelines at scale, technical strategy", "expert-level architecture"},
		},
	},
	"devops": {
		Description: "DevOps Engineer",
		Topics:      []string{"CI/CD", "Containers", "Kubernetes", "Cloud Infrastructure", "Monitoring", "Infrastructure as Code", "Networking", "Incident Response"},
		Levels: [5]levelGuideline{
			{"Linux basics, shell scripting, version control, simple CI pipelines", "fundamental concepts"},
			{"Docker, pipeline design, environment configuration, basic monitoring", "practical operations"},
			{"Kubernetes operations, IaC with Terraform, observability, secrets management", "production operations"},
			{"Platform design, multi-region infrastructure, cost optimization, SRE practices", "infrastructure design"},
			{"Organization-wide platform strategy, large-scale reliability, incident leadership", "expert-level operations"},
		},
	},
}

func guidelineFor(role string, experienceLevel int) (roleGuideline, levelGuideline) {
	g, ok := roleGuidelines[role]
	if !ok {
		g = roleGuidelines["frontend"]
	}
	if experienceLevel < 0 || experienceLevel > 4 {
		experienceLevel = 1
	}
	return g, g.Levels[experienceLevel]
}

// DifficultyForPosition fixes question difficulty by session position:
// the first two questions are easy, the last two are hard, everything in
// between is medium. This lives in the gateway so difficulty stays
// consistent regardless of what the model returns.
func DifficultyForPosition(position, totalQuestions int) string {
	switch {
	case position <= 2:
		return domain.DifficultyEasy
	case position >= totalQuestions-1:
		return domain.DifficultyHard
	default:
		return domain.DifficultyMedium
	}
}

func buildQuestionPrompt(role string, experienceLevel int, previousQuestions []string, cfg domain.LevelConfig) (system, user, difficulty string) {
	guidelines, level := guidelineFor(role, experienceLevel)

	questionNumber := len(previousQuestions) + 1
	difficulty = DifficultyForPosition(questionNumber, cfg.QuestionCount)

	var previousContext string
	if len(previousQuestions) > 0 {
		var b strings.Builder
		b.WriteString("\n\nPreviously asked questions (DO NOT repeat or be too similar):\n")
		for i, q := range previousQuestions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q)
		}
		previousContext = b.String()
	}

	system = fmt.Sprintf("You are an expert %s interviewer who generates practical, scenario-based questions that test real-world skills. Always respond with valid JSON only. Make questions specific, detailed, and relevant to actual job scenarios.", guidelines.Description)

	user = fmt.Sprintf(`You are an expert %s interviewer conducting a %d-minute interview.

CANDIDATE PROFILE:
- Experience Level: %s
- Question %d of %d
- Time per question: %d seconds

QUESTION REQUIREMENTS:
1. Focus Area: %s
2. Difficulty: %s (%s)
3. Topics to cover: %s
4. Must be PRACTICAL and SCENARIO-BASED (not just theoretical)
5. Should test real-world problem-solving ability
6. Must be answerable in %d seconds%s

QUESTION TYPES TO USE:
- Scenario-based: "How would you handle/implement/solve..."
- Problem-solving: "Given this situation, what approach would you take..."
- Experience-based: "Describe a time when..." (for HR)
- Code review: "What's wrong with this code and how would you fix it..."
- Design: "How would you design/architect..."

Generate ONE high-quality, practical interview question.

Return ONLY a JSON object:
{
  "question": "Detailed, scenario-based question here",
  "category": "Specific category from topics list",
  "difficulty": "%s",
  "expectedDuration": %d
}`,
		guidelines.Description, cfg.TotalMinutes,
		level.Focus, questionNumber, cfg.QuestionCount, cfg.SecondsPerQuestion,
		level.Focus,
		difficulty, level.Difficulty,
		strings.Join(guidelines.Topics, ", "),
		cfg.SecondsPerQuestion, previousContext,
		difficulty, cfg.SecondsPerQuestion)

	return system, user, difficulty
}

func buildEvaluationPrompt(questionText, answerText, role string, experienceLevel int) (system, user string) {
	guidelines, _ := guidelineFor(role, experienceLevel)
	levelName := domain.LevelName(experienceLevel)

	system = "You are an expert technical interviewer who provides fair, constructive, and actionable evaluations. Always respond with valid JSON only."

	user = fmt.Sprintf(`You are an expert technical interviewer evaluating a candidate's answer.

Role: %s
Experience Level: %s
Question: "%s"
Candidate's Answer: "%s"

Evaluate the answer based on:
1. Correctness and accuracy
2. Completeness and depth
3. Clarity of explanation
4. Practical understanding
5. Appropriate for %s level

Provide a score from 0-10 where:
- 0-3: Poor (incorrect, incomplete, or unclear)
- 4-5: Below Average (partially correct but lacking depth)
- 6-7: Good (correct and reasonably complete)
- 8-9: Excellent (thorough, clear, and insightful)
- 10: Outstanding (exceptional understanding and explanation)

Return ONLY a JSON object with this exact structure:
{
  "score": 7,
  "feedback": "2-3 sentences of constructive feedback highlighting what was good and what could be improved",
  "strengths": ["specific strength 1", "specific strength 2"],
  "improvements": ["specific improvement 1", "specific improvement 2"]
}`,
		guidelines.Description, levelName, questionText, answerText, levelName)

	return system, user
}

func buildSynthesisPrompt(role string, experienceLevel int, answers []domain.Answer, averageScore float64, overallScore int) (system, user string) {
	guidelines, _ := guidelineFor(role, experienceLevel)
	levelName := domain.LevelName(experienceLevel)

	var summary strings.Builder
	for idx, a := range answers {
		answerText := a.Answer
		if len(answerText) > 200 {
			answerText = answerText[:200] + "..."
		}
		if idx > 0 {
			summary.WriteString("\n\n---\n\n")
		}
		fmt.Fprintf(&summary, "Question %d: %s\nAnswer: %s\nScore: %d/10\nFeedback: %s",
			idx+1, a.Question, answerText, a.Evaluation.Score, a.Evaluation.Feedback)
	}

	system = "You are an expert technical interviewer who provides comprehensive, constructive, and actionable feedback. Always respond with valid JSON only."

	user = fmt.Sprintf(`You are an expert technical interviewer providing comprehensive final feedback after completing an interview.

Role: %s
Experience Level: %s
Total Questions: %d
Average Score: %.1f/10 (%d%%)

Interview Performance Summary:
%s

Based on the entire interview, provide:
1. strengths: Array of 3-5 specific strengths demonstrated across all answers
2. weakAreas: Array of 3-5 areas that need improvement
3. improvements: Array of 3-5 actionable, specific recommendations for improvement
4. summary: A comprehensive paragraph (4-6 sentences) summarizing overall performance, readiness for the role, and key takeaways

Be specific, constructive, and actionable. Focus on patterns across multiple answers, not just individual responses.

Return ONLY a JSON object with this exact structure:
{
  "strengths": ["specific strength 1", "specific strength 2", "specific strength 3"],
  "weakAreas": ["specific weak area 1", "specific weak area 2", "specific weak area 3"],
  "improvements": ["actionable suggestion 1", "actionable suggestion 2", "actionable suggestion 3"],
  "summary": "Comprehensive paragraph summarizing overall performance..."
}`,
		guidelines.Description, levelName, len(answers), averageScore, overallScore, summary.String())

	return system, user
}
