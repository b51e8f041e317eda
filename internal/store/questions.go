package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var questionColumns = []string{"id", "quest_id", "type", "prompt", "choices_json", "answer_json", "xp_value"}

type answerSpec struct {
	CorrectIndex *int `json:"correctIndex"`
}

type submittedAnswer struct {
	SelectedIndex int `json:"selectedIndex"`
}

// decodeChoices parses a JSON array of strings. Anything else yields an
// empty list.
func decodeChoices(raw string) []string {
	var choices []string
	if err := json.Unmarshal([]byte(raw), &choices); err != nil || choices == nil {
		return []string{}
	}
	return choices
}

// decodeAnswer returns the correct index, or -1 when none can be read.
func decodeAnswer(raw string) int {
	var spec answerSpec
	if err := json.Unmarshal([]byte(raw), &spec); err != nil || spec.CorrectIndex == nil {
		return -1
	}
	return *spec.CorrectIndex
}

// EncodeChoices renders choices the way they are stored.
func EncodeChoices(choices []string) string {
	if choices == nil {
		choices = []string{}
	}
	b, _ := json.Marshal(choices)
	return string(b)
}

// EncodeAnswer renders a correct index the way it is stored.
func EncodeAnswer(correctIndex int) string {
	b, _ := json.Marshal(answerSpec{CorrectIndex: &correctIndex})
	return string(b)
}

func scanQuestion(scan func(dest ...any) error) (*Question, error) {
	var (
		q       Question
		choices string
		answer  string
	)
	if err := scan(&q.ID, &q.QuestID, &q.Type, &q.Prompt, &choices, &answer, &q.XPValue); err != nil {
		return nil, err
	}
	q.Choices = decodeChoices(choices)
	q.CorrectIndex = decodeAnswer(answer)
	return &q, nil
}

func (r *repo) Question(ctx context.Context, id int) (*Question, error) {
	sel := sqlite.Select(questionColumns...).
		From(entsql.Table(tableQuestions)).
		Where(entsql.EQ("id", id))

	q, err := scanQuestion(r.queryRow(ctx, sel).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query question: %w", err)
	}
	return q, nil
}

func (r *repo) Questions(ctx context.Context, questID int) ([]Question, error) {
	sel := sqlite.Select(questionColumns...).
		From(entsql.Table(tableQuestions)).
		Where(entsql.EQ("quest_id", questID)).
		OrderBy("id")

	rows, err := r.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		q, err := scanQuestion(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

// unanswered matches questions of questID that userID has never answered
// correctly.
func unanswered(qs *entsql.SelectTable, userID string, questID int) *entsql.Predicate {
	a := entsql.Table(tableAttempts)
	correct := sqlite.Select(a.C("id")).
		From(a).
		Where(entsql.And(
			entsql.ColumnsEQ(a.C("question_id"), qs.C("id")),
			entsql.EQ(a.C("user_id"), userID),
			entsql.EQ(a.C("is_correct"), true),
		))
	return entsql.And(
		entsql.EQ(qs.C("quest_id"), questID),
		entsql.NotExists(correct),
	)
}

func (r *repo) NextUnanswered(ctx context.Context, userID string, questID int) (*Question, error) {
	qs := entsql.Table(tableQuestions)
	cols := make([]string, len(questionColumns))
	for i, c := range questionColumns {
		cols[i] = qs.C(c)
	}
	sel := sqlite.Select(cols...).
		From(qs).
		Where(unanswered(qs, userID, questID)).
		OrderBy(qs.C("id")).
		Limit(1)

	q, err := scanQuestion(r.queryRow(ctx, sel).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query next question: %w", err)
	}
	return q, nil
}

func (r *repo) UnansweredCount(ctx context.Context, userID string, questID int) (int, error) {
	qs := entsql.Table(tableQuestions)
	sel := sqlite.Select(entsql.Count("*")).
		From(qs).
		Where(unanswered(qs, userID, questID))

	var n int
	if err := r.queryRow(ctx, sel).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unanswered: %w", err)
	}
	return n, nil
}

func (r *repo) HasCorrectAttempt(ctx context.Context, userID string, questionID int) (bool, error) {
	sel := sqlite.Select(entsql.Count("*")).
		From(entsql.Table(tableAttempts)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("question_id", questionID),
			entsql.EQ("is_correct", true),
		))

	var n int
	if err := r.queryRow(ctx, sel).Scan(&n); err != nil {
		return false, fmt.Errorf("count correct attempts: %w", err)
	}
	return n > 0, nil
}

func (r *repo) AppendAttempt(ctx context.Context, a Attempt) error {
	answer, err := json.Marshal(submittedAnswer{SelectedIndex: a.SelectedIndex})
	if err != nil {
		return fmt.Errorf("encode answer: %w", err)
	}
	ins := sqlite.Insert(tableAttempts).
		Columns("user_id", "question_id", "timestamp", "is_correct", "user_answer_json").
		Values(a.UserID, a.QuestionID, a.Timestamp.UTC(), a.Correct, string(answer))
	if _, err := r.exec(ctx, ins); err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}
