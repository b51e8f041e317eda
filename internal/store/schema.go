package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names shared by the repositories.
const (
	tableUsers            = "users"
	tableUserStats        = "user_stats"
	tableQuests           = "quests"
	tableQuestProgress    = "quest_progress"
	tableLessons          = "lessons"
	tableQuestions        = "questions"
	tableAttempts         = "attempts"
	tableDailyTasks       = "daily_tasks"
	tableDailyCompletions = "daily_completions"
	tableSettings         = "settings"
)

var (
	// UsersColumns holds the columns for the "users" table.
	UsersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "username", Type: field.TypeString, Unique: true},
		{Name: "created_at", Type: field.TypeTime},
	}
	// UsersTable holds the schema information for the "users" table.
	UsersTable = &schema.Table{
		Name:       tableUsers,
		Columns:    UsersColumns,
		PrimaryKey: []*schema.Column{UsersColumns[0]},
	}

	// UserStatsColumns holds the columns for the "user_stats" table.
	UserStatsColumns = []*schema.Column{
		{Name: "user_id", Type: field.TypeString},
		{Name: "total_xp", Type: field.TypeInt, Default: 0},
		{Name: "level", Type: field.TypeInt, Default: 1},
		{Name: "last_active", Type: field.TypeTime, Nullable: true},
	}
	// UserStatsTable holds the schema information for the "user_stats" table.
	UserStatsTable = &schema.Table{
		Name:       tableUserStats,
		Columns:    UserStatsColumns,
		PrimaryKey: []*schema.Column{UserStatsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "user_stats_users_stats",
				Columns:    []*schema.Column{UserStatsColumns[0]},
				RefColumns: []*schema.Column{UsersColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	// QuestsColumns holds the columns for the "quests" table.
	QuestsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "title", Type: field.TypeString},
		{Name: "topic", Type: field.TypeString},
		{Name: "difficulty", Type: field.TypeInt, Default: 1},
	}
	// QuestsTable holds the schema information for the "quests" table.
	QuestsTable = &schema.Table{
		Name:       tableQuests,
		Columns:    QuestsColumns,
		PrimaryKey: []*schema.Column{QuestsColumns[0]},
	}

	// QuestProgressColumns holds the columns for the "quest_progress" table.
	QuestProgressColumns = []*schema.Column{
		{Name: "user_id", Type: field.TypeString},
		{Name: "quest_id", Type: field.TypeInt},
		{Name: "status", Type: field.TypeEnum, Enums: []string{"locked", "unlocked", "completed"}, Default: "locked"},
		{Name: "best_score", Type: field.TypeInt, Default: 0},
		{Name: "last_attempt", Type: field.TypeTime, Nullable: true},
	}
	// QuestProgressTable holds the schema information for the "quest_progress" table.
	QuestProgressTable = &schema.Table{
		Name:       tableQuestProgress,
		Columns:    QuestProgressColumns,
		PrimaryKey: []*schema.Column{QuestProgressColumns[0], QuestProgressColumns[1]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "quest_progress_users_progress",
				Columns:    []*schema.Column{QuestProgressColumns[0]},
				RefColumns: []*schema.Column{UsersColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "quest_progress_quests_progress",
				Columns:    []*schema.Column{QuestProgressColumns[1]},
				RefColumns: []*schema.Column{QuestsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
	}

	// LessonsColumns holds the columns for the "lessons" table.
	LessonsColumns = []*schema.Column{
		{Name: "quest_id", Type: field.TypeInt},
		{Name: "body", Type: field.TypeString, Size: 2147483647},
	}
	// LessonsTable holds the schema information for the "lessons" table.
	LessonsTable = &schema.Table{
		Name:       tableLessons,
		Columns:    LessonsColumns,
		PrimaryKey: []*schema.Column{LessonsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "lessons_quests_lesson",
				Columns:    []*schema.Column{LessonsColumns[0]},
				RefColumns: []*schema.Column{QuestsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
	}

	// QuestionsColumns holds the columns for the "questions" table.
	QuestionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "quest_id", Type: field.TypeInt},
		{Name: "type", Type: field.TypeString},
		{Name: "prompt", Type: field.TypeString, Size: 2147483647},
		{Name: "choices_json", Type: field.TypeString, Size: 2147483647},
		{Name: "answer_json", Type: field.TypeString},
		{Name: "xp_value", Type: field.TypeInt, Default: 10},
	}
	// QuestionsTable holds the schema information for the "questions" table.
	QuestionsTable = &schema.Table{
		Name:       tableQuestions,
		Columns:    QuestionsColumns,
		PrimaryKey: []*schema.Column{QuestionsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "questions_quests_questions",
				Columns:    []*schema.Column{QuestionsColumns[1]},
				RefColumns: []*schema.Column{QuestsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "question_quest_id",
				Unique:  false,
				Columns: []*schema.Column{QuestionsColumns[1]},
			},
		},
	}

	// AttemptsColumns holds the columns for the "attempts" table.
	AttemptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "question_id", Type: field.TypeInt},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "is_correct", Type: field.TypeBool},
		{Name: "user_answer_json", Type: field.TypeString},
	}
	// AttemptsTable holds the schema information for the "attempts" table.
	AttemptsTable = &schema.Table{
		Name:       tableAttempts,
		Columns:    AttemptsColumns,
		PrimaryKey: []*schema.Column{AttemptsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "attempts_users_attempts",
				Columns:    []*schema.Column{AttemptsColumns[1]},
				RefColumns: []*schema.Column{UsersColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "attempts_questions_attempts",
				Columns:    []*schema.Column{AttemptsColumns[2]},
				RefColumns: []*schema.Column{QuestionsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "attempt_user_id_question_id",
				Unique:  false,
				Columns: []*schema.Column{AttemptsColumns[1], AttemptsColumns[2]},
			},
		},
	}

	// DailyTasksColumns holds the columns for the "daily_tasks" table.
	DailyTasksColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "title", Type: field.TypeString},
		{Name: "xp_value", Type: field.TypeInt, Default: 10},
		{Name: "active", Type: field.TypeBool, Default: true},
	}
	// DailyTasksTable holds the schema information for the "daily_tasks" table.
	DailyTasksTable = &schema.Table{
		Name:       tableDailyTasks,
		Columns:    DailyTasksColumns,
		PrimaryKey: []*schema.Column{DailyTasksColumns[0]},
	}

	// DailyCompletionsColumns holds the columns for the "daily_completions" table.
	DailyCompletionsColumns = []*schema.Column{
		{Name: "user_id", Type: field.TypeString},
		{Name: "task_id", Type: field.TypeInt},
		{Name: "day", Type: field.TypeString},
		{Name: "completed_at", Type: field.TypeTime},
	}
	// DailyCompletionsTable holds the schema information for the "daily_completions" table.
	DailyCompletionsTable = &schema.Table{
		Name:       tableDailyCompletions,
		Columns:    DailyCompletionsColumns,
		PrimaryKey: []*schema.Column{DailyCompletionsColumns[0], DailyCompletionsColumns[1], DailyCompletionsColumns[2]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "daily_completions_users_completions",
				Columns:    []*schema.Column{DailyCompletionsColumns[0]},
				RefColumns: []*schema.Column{UsersColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "daily_completions_daily_tasks_completions",
				Columns:    []*schema.Column{DailyCompletionsColumns[1]},
				RefColumns: []*schema.Column{DailyTasksColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "dailycompletion_day",
				Unique:  false,
				Columns: []*schema.Column{DailyCompletionsColumns[2]},
			},
			{
				Name:    "dailycompletion_user_id",
				Unique:  false,
				Columns: []*schema.Column{DailyCompletionsColumns[0]},
			},
		},
	}

	// SettingsColumns holds the columns for the "settings" table.
	SettingsColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString},
		{Name: "value", Type: field.TypeString},
	}
	// SettingsTable holds the schema information for the "settings" table.
	SettingsTable = &schema.Table{
		Name:       tableSettings,
		Columns:    SettingsColumns,
		PrimaryKey: []*schema.Column{SettingsColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		UsersTable,
		UserStatsTable,
		QuestsTable,
		QuestProgressTable,
		LessonsTable,
		QuestionsTable,
		AttemptsTable,
		DailyTasksTable,
		DailyCompletionsTable,
		SettingsTable,
	}
)

func init() {
	UserStatsTable.ForeignKeys[0].RefTable = UsersTable
	QuestProgressTable.ForeignKeys[0].RefTable = UsersTable
	QuestProgressTable.ForeignKeys[1].RefTable = QuestsTable
	LessonsTable.ForeignKeys[0].RefTable = QuestsTable
	QuestionsTable.ForeignKeys[0].RefTable = QuestsTable
	AttemptsTable.ForeignKeys[0].RefTable = UsersTable
	AttemptsTable.ForeignKeys[1].RefTable = QuestionsTable
	DailyCompletionsTable.ForeignKeys[0].RefTable = UsersTable
	DailyCompletionsTable.ForeignKeys[1].RefTable = DailyTasksTable
}
