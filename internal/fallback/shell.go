package fallback

import "text/template"

type hudItem struct {
	ID      string
	Label   string
	Initial string
}

type shellData struct {
	Kind        string
	Title       string
	Description string
	Primary     string
	Secondary   string
	Background  string
	Controls    string
	StartLabel  string
	HUD         []hudItem
	Script      string
}

// genre 一种玩法：HUD、配色与规则脚本。脚本需定义 const genre = { init, update, render, hud, onKey?, onClick? }
type genre struct {
	kind         Kind
	palette      []string
	singleAccent bool
	background   string
	controls     string
	startLabel   string
	hud          []hudItem
	script       string
}

var genres = map[Kind]genre{}

func register(g genre) {
	genres[g.kind] = g
}

// 规则脚本中不允许出现反引号与双左花括号
var shellTemplate = template.Must(template.New("shell").Parse(shellSource))

const shellSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<meta name="generator" content="gameforge-fallback/{{.Kind}}">
<title>{{.Title}}</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    min-height: 100vh;
    display: flex;
    flex-direction: column;
    align-items: center;
    justify-content: center;
    background: {{.Background}};
    color: #fff;
    font-family: 'Courier New', monospace;
    overflow: hidden;
  }
  h1 { font-size: 28px; margin-bottom: 4px; color: {{.Primary}}; text-shadow: 0 0 12px {{.Primary}}; }
  .description { max-width: 800px; text-align: center; font-size: 13px; opacity: 0.8; margin-bottom: 10px; }
  #hud { display: flex; gap: 24px; margin-bottom: 8px; font-size: 16px; }
  #hud .label { opacity: 0.7; margin-right: 4px; }
  #hud .value { color: {{.Secondary}}; font-weight: bold; }
  #gameCanvas { display: block; border: 3px solid {{.Primary}}; border-radius: 8px; box-shadow: 0 0 24px rgba(0, 0, 0, 0.5); background: #111; }
  .controls { margin-top: 10px; display: flex; gap: 12px; align-items: center; font-size: 13px; }
  button {
    padding: 8px 18px;
    font-family: inherit;
    font-size: 14px;
    font-weight: bold;
    color: #111;
    background: {{.Primary}};
    border: none;
    border-radius: 6px;
    cursor: pointer;
  }
  button:hover { background: {{.Secondary}}; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="description">{{.Description}}</p>
<div id="hud">
{{- range .HUD}}
  <div><span class="label">{{.Label}}:</span><span class="value" id="{{.ID}}">{{.Initial}}</span></div>
{{- end}}
  <div><span class="value" id="status">Ready</span></div>
</div>
<canvas id="gameCanvas" width="800" height="600"></canvas>
<div class="controls">
  <button id="startButton">{{.StartLabel}}</button>
  <button id="restartButton">Restart</button>
  <span>{{.Controls}}</span>
</div>
<script>
const canvas = document.getElementById('gameCanvas');
const ctx = canvas.getContext('2d');
const W = canvas.width;
const H = canvas.height;
const PRIMARY = '{{.Primary}}';
const SECONDARY = '{{.Secondary}}';

const keys = {};
const mouse = { x: W / 2, y: H / 2, down: false };
let particles = [];
let state = null;
let running = false;
let lastTime = 0;

function isColliding(a, b) {
  return a.x < b.x + b.width && a.x + a.width > b.x && a.y < b.y + b.height && a.y + a.height > b.y;
}

function rand(min, max) {
  return Math.random() * (max - min) + min;
}

function pick(list) {
  return list[Math.floor(Math.random() * list.length)];
}

function burst(x, y, color, count, speed) {
  for (let i = 0; i < count; i++) {
    const angle = Math.random() * Math.PI * 2;
    const v = Math.random() * speed;
    particles.push({ x: x, y: y, vx: Math.cos(angle) * v, vy: Math.sin(angle) * v, size: rand(2, 5), life: 1, color: color });
  }
}

function updateParticles(dt) {
  const step = dt * 60;
  particles = particles.filter(function (p) {
    p.x += p.vx * step;
    p.y += p.vy * step;
    p.vy += 0.05 * step;
    p.life -= dt * 1.5;
    p.size *= 0.98;
    return p.life > 0;
  });
}

function drawParticles() {
  particles.forEach(function (p) {
    ctx.globalAlpha = Math.max(p.life, 0);
    ctx.fillStyle = p.color;
    ctx.fillRect(p.x - p.size / 2, p.y - p.size / 2, p.size, p.size);
  });
  ctx.globalAlpha = 1;
}

function setHud(id, value) {
  const el = document.getElementById(id);
  if (el) el.textContent = value;
}

function drawBanner(text, sub) {
  ctx.fillStyle = 'rgba(0, 0, 0, 0.65)';
  ctx.fillRect(0, H / 2 - 70, W, 140);
  ctx.textAlign = 'center';
  ctx.fillStyle = PRIMARY;
  ctx.font = 'bold 42px Courier New';
  ctx.fillText(text, W / 2, H / 2);
  ctx.fillStyle = '#fff';
  ctx.font = '18px Courier New';
  ctx.fillText(sub, W / 2, H / 2 + 36);
  ctx.textAlign = 'left';
}

function finish(s, won) {
  if (s.over) return;
  s.over = true;
  s.won = won;
  burst(W / 2, H / 2, won ? PRIMARY : '#FF4444', 60, 8);
}

function render() {
  genre.render(ctx, state);
  drawParticles();
}

function loop(now) {
  if (!running) return;
  const dt = Math.min((now - lastTime) / 1000, 0.05);
  lastTime = now;
  genre.update(state, dt);
  updateParticles(dt);
  genre.hud(state);
  render();
  if (state.over) {
    running = false;
    setHud('status', state.won ? 'Victory' : 'Game Over');
    drawBanner(state.won ? 'You Win!' : 'Game Over', 'Score: ' + state.score + ' - press Restart');
    return;
  }
  requestAnimationFrame(loop);
}

function startGame() {
  if (running) return;
  if (!state || state.over) resetGame();
  running = true;
  setHud('status', 'Playing');
  lastTime = performance.now();
  requestAnimationFrame(loop);
}

function resetGame() {
  running = false;
  particles = [];
  state = genre.init();
  state.over = false;
  state.won = false;
  genre.hud(state);
  setHud('status', 'Ready');
  render();
  drawBanner('{{.StartLabel}}', 'Press Start or Enter');
}

document.addEventListener('keydown', function (e) {
  keys[e.code] = true;
  if (['ArrowUp', 'ArrowDown', 'ArrowLeft', 'ArrowRight', 'Space'].indexOf(e.code) >= 0) e.preventDefault();
  if (e.code === 'Enter') startGame();
  if (running && genre.onKey) genre.onKey(state, e.code);
});
document.addEventListener('keyup', function (e) {
  keys[e.code] = false;
});
canvas.addEventListener('mousemove', function (e) {
  const r = canvas.getBoundingClientRect();
  mouse.x = (e.clientX - r.left) * (W / r.width);
  mouse.y = (e.clientY - r.top) * (H / r.height);
});
canvas.addEventListener('mousedown', function (e) {
  const r = canvas.getBoundingClientRect();
  mouse.x = (e.clientX - r.left) * (W / r.width);
  mouse.y = (e.clientY - r.top) * (H / r.height);
  mouse.down = true;
  if (running && genre.onClick) genre.onClick(state, mouse.x, mouse.y);
});
canvas.addEventListener('mouseup', function () {
  mouse.down = false;
});
document.getElementById('startButton').addEventListener('click', startGame);
document.getElementById('restartButton').addEventListener('click', function () {
  resetGame();
  startGame();
});

{{.Script}}

resetGame();
</script>
</body>
</html>
`
