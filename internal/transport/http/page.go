package http

import (
	"html/template"
	"log"
	"net/http"
)

// Index serves the player console. All game data is fetched by the page
// itself via /api/state polling; the template only carries the shell.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := playerPage.Execute(w, nil); err != nil {
		log.Printf("render player page: %v", err)
	}
}

var playerPage = template.Must(template.New("player").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Buzzer Round &ndash; Player Console</title>
<style>
body { font-family: Arial, sans-serif; background: #0d47a1; color: #fff; margin: 0; }
.container { max-width: 800px; margin: 0 auto; padding: 24px; }
h1 { text-align: center; }
.card { background: rgba(255,255,255,0.1); padding: 16px; border-radius: 12px; margin-bottom: 16px; }
label { display: block; margin-bottom: 6px; font-weight: bold; }
input[type="text"], select { width: 100%; padding: 10px; border-radius: 8px; border: none; font-size: 16px; box-sizing: border-box; }
.question-prompt { font-size: 20px; margin-bottom: 16px; }
.active-team { margin-bottom: 12px; font-weight: bold; }
.answers { display: grid; gap: 12px; }
.answer-btn { padding: 14px; font-size: 16px; border: none; border-radius: 10px; background: #1976d2; color: #fff; cursor: pointer; }
.answer-btn:disabled { background: rgba(25,118,210,0.4); cursor: not-allowed; }
.info-text { background: rgba(255,255,255,0.12); padding: 12px; border-radius: 8px; text-align: center; }
.scoreboard-item { background: rgba(255,255,255,0.08); padding: 10px; border-radius: 8px; margin-bottom: 8px; }
.message { margin-top: 12px; font-weight: bold; min-height: 24px; }
.hidden { display: none; }
</style>
</head>
<body>
<div class="container">
<h1>Buzzer Round</h1>
<div class="card">
<label for="player">Player name</label>
<input type="text" id="player" placeholder="Your name">
<label for="team" style="margin-top:12px">Team</label>
<select id="team"></select>
</div>
<div class="card">
<div id="waiting" class="info-text">Waiting for the host to present a question&hellip;</div>
<div id="question" class="hidden">
<div class="active-team" id="active-team"></div>
<div class="question-prompt" id="prompt"></div>
<div class="answers" id="answers"></div>
</div>
<div class="message" id="message"></div>
</div>
<div class="card">
<h3>Scoreboard</h3>
<div id="scoreboard"></div>
</div>
</div>
<script>
const POLL_INTERVAL = 2000;
let submitting = false;

async function poll() {
  try {
    const res = await fetch('/api/state');
    render(await res.json());
  } catch (err) { /* transient; next tick retries */ }
}

function render(state) {
  const teamSelect = document.getElementById('team');
  const current = teamSelect.value;
  teamSelect.innerHTML = '';
  for (const team of state.teams) {
    const opt = document.createElement('option');
    opt.value = team;
    opt.textContent = team;
    if (team === current) opt.selected = true;
    teamSelect.appendChild(opt);
  }

  const waiting = document.getElementById('waiting');
  const question = document.getElementById('question');
  if (state.questionActive && state.question) {
    waiting.classList.add('hidden');
    question.classList.remove('hidden');
    document.getElementById('active-team').textContent =
      'Team at the table: ' + state.question.team +
      ' — ' + state.question.category + ' for ' + state.question.points;
    document.getElementById('prompt').textContent = state.question.prompt;
    const answers = document.getElementById('answers');
    answers.innerHTML = '';
    state.question.answers.forEach((text, index) => {
      const btn = document.createElement('button');
      btn.className = 'answer-btn';
      btn.textContent = text;
      btn.disabled = submitting;
      btn.onclick = () => submitAnswer(index);
      answers.appendChild(btn);
    });
  } else {
    waiting.classList.remove('hidden');
    question.classList.add('hidden');
  }

  document.getElementById('message').textContent = state.message || '';

  const scoreboard = document.getElementById('scoreboard');
  scoreboard.innerHTML = '';
  for (const entry of state.scoreboard) {
    const row = document.createElement('div');
    row.className = 'scoreboard-item';
    row.textContent = entry.team + ': ' + entry.points;
    scoreboard.appendChild(row);
  }
}

async function submitAnswer(index) {
  if (submitting) return;
  submitting = true;
  const body = new URLSearchParams({
    team: document.getElementById('team').value,
    player: document.getElementById('player').value,
    answer: String(index)
  });
  try {
    const res = await fetch('/api/answer', { method: 'POST', body });
    const payload = await res.json();
    document.getElementById('message').textContent = payload.message;
  } catch (err) {
    document.getElementById('message').textContent = 'Submission failed, try again.';
  } finally {
    submitting = false;
    poll();
  }
}

poll();
setInterval(poll, POLL_INTERVAL);
</script>
</body>
</html>
`))
