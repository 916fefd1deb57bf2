package ui

const pageCSS = `body{font-family:system-ui,sans-serif;margin:0;background:#f6f7f9;color:#222}
main{max-width:720px;margin:0 auto;padding:1.5rem}
form{display:grid;gap:.75rem;background:#fff;padding:1rem;border-radius:8px}
label{display:grid;gap:.25rem;font-weight:600}
.actions{display:flex;gap:.5rem}
.error{color:#b00020;min-height:1em;margin:0}
.cards{list-style:none;padding:0;display:grid;gap:.75rem}
.cards li{background:#fff;padding:1rem;border-radius:8px}
.cards .meta{color:#555;margin:.25rem 0}`

const pageJS = `(function () {
  var form = document.getElementById("event-form");
  var list = document.getElementById("event-list");
  var errorBox = document.getElementById("form-error");
  var submitButton = document.getElementById("submit-button");
  var field = function (name) { return document.getElementById("event-" + name); };

  function resetForm() {
    form.reset();
    field("id").value = "";
    field("people").value = "0";
    submitButton.textContent = "Submit Event";
  }

  function showError(message) { errorBox.textContent = message || ""; }

  function readError(res) {
    return res.json().then(function (body) { return body.error || res.statusText; },
      function () { return res.statusText; });
  }

  function payload() {
    var people = field("people").value;
    return {
      name: field("name").value,
      date: field("date").value,
      location: field("location").value,
      description: field("description").value,
      people: people === "" ? 0 : Number(people)
    };
  }

  function card(evt) {
    var li = document.createElement("li");
    var title = document.createElement("h3");
    title.textContent = evt.name;
    var meta = document.createElement("p");
    meta.className = "meta";
    meta.textContent = evt.date + (evt.location ? " · " + evt.location : "") + " · " + evt.people + " people";
    var desc = document.createElement("p");
    desc.textContent = evt.description || "";
    var edit = document.createElement("button");
    edit.type = "button";
    edit.textContent = "Update";
    edit.onclick = function () {
      field("id").value = evt.id;
      field("name").value = evt.name;
      field("date").value = evt.date;
      field("location").value = evt.location || "";
      field("description").value = evt.description || "";
      field("people").value = String(evt.people || 0);
      submitButton.textContent = "Update Event";
      form.scrollIntoView();
    };
    var del = document.createElement("button");
    del.type = "button";
    del.textContent = "Delete";
    del.onclick = function () {
      if (!window.confirm("Delete this event?")) { return; }
      fetch("events/" + encodeURIComponent(evt.id), { method: "DELETE" }).then(function (res) {
        if (!res.ok && res.status !== 404) { return readError(res).then(showError); }
        return fetchEvents();
      });
    };
    li.append(title, meta, desc, edit, del);
    return li;
  }

  function fetchEvents() {
    return fetch("events").then(function (res) {
      if (!res.ok) { return readError(res).then(showError); }
      return res.json().then(function (events) {
        list.replaceChildren.apply(list, events.map(card));
      });
    });
  }

  form.addEventListener("submit", function (e) {
    e.preventDefault();
    showError("");
    var id = field("id").value;
    var url = id ? "events/" + encodeURIComponent(id) : "events";
    fetch(url, {
      method: id ? "PUT" : "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify(payload())
    }).then(function (res) {
      if (!res.ok) { return readError(res).then(showError); }
      resetForm();
      return fetchEvents();
    });
  });

  document.getElementById("fetch-button").addEventListener("click", fetchEvents);
  fetchEvents();
})();`
